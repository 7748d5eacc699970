package services

import "errors"

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrSnapshotsDisabled  = errors.New("schedule snapshots are not configured")
)
