package main

import (
	"github.com/akinalp/quickchat/database"
	"github.com/akinalp/quickchat/repository"
)

// Repositories groups the storage gateways so the init functions take a
// single parameter.
type Repositories struct {
	User    repository.UserRepository
	Message repository.MessageRepository
}

// initRepositories builds every repository on the shared connection pool.
func initRepositories(conn database.TxQuerier) *Repositories {
	return &Repositories{
		User:    repository.NewSQLiteUserRepo(conn),
		Message: repository.NewSQLiteMessageRepo(conn),
	}
}
