// Package model provides the contracts shared by the compose package and the steps it runs.
// It defines one interface per capability a step can expose, the observation type flowing
// through a pipeline and the hooks a pipeline calls while it runs.
package model
