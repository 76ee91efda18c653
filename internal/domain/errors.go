package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrExpired indicates a one-time code past its expiry window.
	ErrExpired = errors.New("code expired")
	// ErrMismatch indicates a one-time code that does not match the stored one.
	ErrMismatch = errors.New("code mismatch")
	// ErrDispatch indicates the messaging provider rejected or failed a send.
	ErrDispatch = errors.New("dispatch failed")
	// ErrOutOfStock indicates a stock decrement would go below zero.
	ErrOutOfStock = errors.New("out of stock")
	// ErrInvalidTransition indicates a disallowed order status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
