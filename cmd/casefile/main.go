// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "casefile",
		Usage: "Legal case document ingestion, deduplication, and claim correlation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest documents through the duplicate-detection cascade",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "origin",
						Usage: "Submission origin (mobile, bulk_scan, cloud_sync)",
						Value: "bulk_scan",
					},
					&cli.StringFlag{
						Name:  "caption",
						Usage: "Optional caption attached to each submission",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for concurrent ingestion",
					},
				),
			},
			{
				Name:  "claims",
				Usage: "Manage and report on tracked claims",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Register a tracked claim",
						Action: claimsAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to BadgerDB database directory",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "text",
								Usage:    "The factual assertion being tracked",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "type",
								Usage:    "Claim type (e.g. presence, payment, ownership)",
								Required: true,
							},
							&cli.TimestampFlag{
								Name:   "from",
								Usage:  "Start of the claim's date range (YYYY-MM-DD)",
								Layout: "2006-01-02",
							},
							&cli.TimestampFlag{
								Name:   "to",
								Usage:  "End of the claim's date range (YYYY-MM-DD)",
								Layout: "2006-01-02",
							},
							&cli.StringSliceFlag{
								Name:  "keyword",
								Usage: "Search keyword (repeatable)",
							},
							&cli.StringFlag{
								Name:  "evidence-type",
								Usage: "Expected evidence document category",
							},
							&cli.IntFlag{
								Name:  "weight",
								Usage: "Claim weight",
								Value: 1,
							},
						},
					},
					{
						Name:   "list",
						Usage:  "List registered claims",
						Action: claimsListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to BadgerDB database directory",
								Required: true,
							},
						},
					},
					{
						Name:   "report",
						Usage:  "Report contradiction scores and case strength for a claim",
						Action: claimsReportCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to BadgerDB database directory",
								Required: true,
							},
							&cli.Uint64Flag{
								Name:     "claim-id",
								Usage:    "Claim to report on",
								Required: true,
							},
							&cli.IntFlag{
								Name:  "top",
								Usage: "Number of top contradicting documents to show",
								Value: 10,
							},
						},
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Show a document's status, tier trail, and scores",
				ArgsUsage: "DOCUMENT_ID",
				Action:    showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are the AI service flags shared by commands that reach the
// extraction, embedding, and classification collaborators.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML configuration file",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Host URL for all AI services",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "classifier-model",
			Usage: "Classifier model name",
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Extractor model name",
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
