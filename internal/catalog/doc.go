// Package catalog holds the list of entity names that extraction searches for.
package catalog
