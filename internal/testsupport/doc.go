// Package testsupport provides fixtures shared by package tests: isolated
// configs rooted in t.TempDir, snapshot blob and catalog writers, and a store
// opener with cleanup.
package testsupport
