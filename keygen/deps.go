package keygen

import "github.com/eisenwinter/appkey/console"

// KeySource issues new application keys
type KeySource interface {
	CreateAppKey() (string, error)
}

// PathResolver maps alias paths like @base/.env to file system paths
type PathResolver interface {
	Resolve(symbolicPath string) (string, error)
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(message string, defaultValue bool) (bool, error)
}

// Writer presents styled lines to the operator
type Writer interface {
	WriteLine(text string, style console.Style) error
}
