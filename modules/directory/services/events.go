package services

import (
	"time"

	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/pkg/session"
)

// DirectoryLoadedEvent is published after every successful load.
type DirectoryLoadedEvent struct {
	Source   string
	Stats    sheet.Stats
	LoadedAt time.Time
	Actor    session.Session
}

// DirectoryLoadFailedEvent is published once per failed fetch.
type DirectoryLoadFailedEvent struct {
	Source   string
	Err      error
	FailedAt time.Time
	Actor    session.Session
}
