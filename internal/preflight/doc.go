// Package preflight runs the environment checks behind `voirank doctor`:
// directory permissions, catalog and blob presence, and optional
// reachability of the external endpoints.
package preflight
