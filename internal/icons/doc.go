// Package icons matches character names to icon files and derives a line
// colour from each icon's dominant visible pixels.
package icons
