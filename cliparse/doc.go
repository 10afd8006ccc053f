// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p              PORT              Server port (default: 3000)
	-store          STORE_TYPE        file, sqlite or postgres (default: file)
	-data           DATA_FILE         Snapshot path for the file store (default: .data/mosques.json)
	-d              DATABASE_URL      sqlite or postgres URL (sqlite default: file:.data/mosques.db)
	-uploads        UPLOAD_DIR        Proof image directory (default: uploads)
	-static         STATIC_DIR        Front-end directory (default: public)
	-tz             TIMEZONE          Zone for default dates (default: Asia/Dhaka)
	-store-timeout  STORE_TIMEOUT     Max wait for a store write (default: 5s)
	-max-upload     MAX_UPLOAD_BYTES  Max upload request size (default: 5 MiB)
	-client-salt    CLIENT_ID_SALT    Salt for hashed client ids in logs
	-env                              dotenv file to load (default: .env)

CLI flags take precedence over environment variables. Variables from the
dotenv file only fill in what the environment does not already set.

# Validation

ParseFlags returns an error if:

  - the store type is unknown
  - postgres is selected without DATABASE_URL
  - the time zone cannot be loaded
  - PORT, STORE_TIMEOUT or MAX_UPLOAD_BYTES do not parse or are not positive
*/
package cliparse
