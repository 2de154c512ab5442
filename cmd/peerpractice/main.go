package main

import (
	"context"
	"log"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
