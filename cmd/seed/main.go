package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/vidtube/backend/config"
	"github.com/vidtube/backend/pkg/helpers"
)

type seedUser struct {
	username string
	email    string
	fullname string
	password string
}

var users = []seedUser{
	{"alice", "alice@example.com", "Alice Anders", "Passw0rd!a"},
	{"bob", "bob@example.com", "Bob Breslin", "Passw0rd!b"},
	{"carol", "carol@example.com", "Carol Chen", "Passw0rd!c"},
	{"dave", "dave@example.com", "Dave Dorman", "Passw0rd!d"},
}

type seedVideo struct {
	owner string
	title string
}

var videos = []seedVideo{
	{"alice", "Go channels explained"},
	{"alice", "Building an HTTP API"},
	{"bob", "Intro to SQL joins"},
	{"carol", "Deploying to the cloud"},
}

// subscriber -> channel
var subscriptions = [][2]string{
	{"bob", "alice"},
	{"carol", "alice"},
	{"dave", "alice"},
	{"alice", "bob"},
	{"alice", "carol"},
}

// username -> watched video titles, in order
var watched = map[string][]string{
	"bob":   {"Go channels explained", "Building an HTTP API"},
	"carol": {"Go channels explained"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	userIDs := map[string]string{}
	for _, u := range users {
		hash, err := helpers.HashPassword(u.password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var id string
		err = db.QueryRow(`
			INSERT INTO users (username, email, fullname, password, avatar_url, cover_image_url)
			VALUES ($1, $2, $3, $4, $5, '')
			ON CONFLICT (email) DO UPDATE SET fullname = EXCLUDED.fullname
			RETURNING id
		`, u.username, u.email, u.fullname, hash,
			fmt.Sprintf("https://storage.googleapis.com/vidtube-dev/avatars/%s.png", u.username)).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.username, err)
		}
		userIDs[u.username] = id
	}
	fmt.Printf("seeded %d users\n", len(userIDs))

	videoIDs := map[string]string{}
	for _, v := range videos {
		var id string
		err := db.QueryRow(`
			INSERT INTO videos (owner_id, title, description, thumbnail_url, video_url, duration, views)
			VALUES ($1, $2, '', '', '', 0, 0)
			RETURNING id
		`, userIDs[v.owner], v.title).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed video %q: %v", v.title, err)
		}
		videoIDs[v.title] = id
	}
	fmt.Printf("seeded %d videos\n", len(videoIDs))

	for _, s := range subscriptions {
		if _, err := db.Exec(`
			INSERT INTO subscriptions (subscriber_id, channel_id)
			VALUES ($1, $2)
			ON CONFLICT (subscriber_id, channel_id) DO NOTHING
		`, userIDs[s[0]], userIDs[s[1]]); err != nil {
			log.Fatalf("failed to seed subscription %s -> %s: %v", s[0], s[1], err)
		}
	}
	fmt.Printf("seeded %d subscriptions\n", len(subscriptions))

	for username, titles := range watched {
		for _, title := range titles {
			if _, err := db.Exec(`
				UPDATE users SET watch_history = array_append(watch_history, $2)
				WHERE id = $1 AND NOT ($2 = ANY(watch_history))
			`, userIDs[username], videoIDs[title]); err != nil {
				log.Fatalf("failed to seed watch history for %s: %v", username, err)
			}
		}
	}
	fmt.Println("seeded watch history")
}
