// Package testsupport holds helpers shared by package tests: environment
// isolation, small file fixtures, and config files built from config.Config.
package testsupport
