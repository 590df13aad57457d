// Package domain contains the core entities shared by the link service, the
// storage layer and the HTTP handlers. They carry no infrastructure concerns.
package domain
