package services

import "errors"

var (
	// ErrUnauthorized signals a missing, expired or otherwise invalid
	// credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNicknameTaken signals a registration with an existing nickname.
	ErrNicknameTaken = errors.New("nickname already taken")
	// ErrSelfRequest signals a friend request from a user to themselves.
	ErrSelfRequest = errors.New("cannot send friend request to yourself")
	// ErrDuplicateRequest signals that a friend request already links the
	// pair, in either direction and any status.
	ErrDuplicateRequest = errors.New("friend request already exists")
	// ErrBlocked signals a message to a user who has blocked the sender.
	ErrBlocked = errors.New("cannot contact this user")
	// ErrPeopleDetected signals an upload rejected because the image shows
	// a non-famous person.
	ErrPeopleDetected = errors.New("photo appears to contain a person")
	// ErrClassifierUnavailable signals that image analysis failed; callers
	// recover with a safe default instead of surfacing it.
	ErrClassifierUnavailable = errors.New("image analysis unavailable")
)
