// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Biryani Lagbe API server.

Biryani Lagbe is a crowd-sourced map of Dhaka mosques that hand out free
food (biryani, muri, jilapi) after prayers. Visitors report a mosque and
others agree or disagree, which moves the report's trust score.

# Starting the Server

With no configuration the server stores everything in a JSON snapshot:

	go run .

Or with flags:

	go run . -p 8080 -store sqlite -d "file:.data/mosques.db"
	go run . -store postgres -d "postgres://..."

# Configuration

All settings have defaults. See package cliparse for the full list; the
common ones are:

  - PORT (-p): Server port (default: 3000)
  - STORE_TYPE (-store): file, sqlite or postgres
  - DATA_FILE (-data): snapshot path for the file store
  - DATABASE_URL (-d): SQL connection string
  - TIMEZONE (-tz): zone used for "today" (default: Asia/Dhaka)

# Architecture

  - reports: report rules, store contract, filtering and trust
  - ledger: in-memory one-vote-per-client ledger
  - filestore, sqlstore: the two store backends
  - handlers, router, middleware: HTTP surface
  - uploads: proof image validation and storage
  - identity: client ids and log hashing
  - db: SQL connections and schema
  - cliparse: configuration parsing
  - models: JSON types

See package documentation for each component.
*/
package main
