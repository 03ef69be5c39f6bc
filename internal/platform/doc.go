// Package platform wraps filesystem calls whose behaviour differs between
// operating systems.
package platform
