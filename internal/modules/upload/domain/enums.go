//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Category represents the kind of upload being stored
// ENUM(photo,document)
type Category string
