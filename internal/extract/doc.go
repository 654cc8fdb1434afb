// Package extract finds catalog entity names in a video's tags.
package extract
