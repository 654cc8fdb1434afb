// Package textutil provides small text helpers shared by report drivers.
//
// The primary use cases are:
//   - Normalizing character names typed in different input widths so icon
//     file names can be matched against catalog names
//   - Sanitizing filenames and path segments for safe filesystem use
package textutil
