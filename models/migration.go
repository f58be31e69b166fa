package models

import (
	"log"

	"github.com/miharina-tech/miharina_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&BusinessProfile{},
		&Opportunity{},
		&Match{},
		&Conversation{}, &Message{},
		&SuccessStory{},
		&Upload{},
		&ContactRequest{}, &ProfileView{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
