// Package storage provides the string-keyed, string-valued persistent stores
// the recovery records live in. SQLite is the default backend; BadgerDB is
// available for installs that prefer an embedded LSM directory.
package storage
