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
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/casefile"
	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/pipeline"
)

func openDatabase(c *cli.Context, opts ...casefile.DatabaseOption) (*casefile.Database, error) {
	db, err := casefile.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", c.String("db"), err)
	}
	return db, nil
}

// aiOverrides collects command-line AI service flags as config options,
// applied on top of any YAML config file.
func aiOverrides(c *cli.Context) []ai.ConfigOption {
	var opts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("classifier-model"); model != "" {
		opts = append(opts, ai.WithClassifierModel(model))
	}
	if model := c.String("extractor-model"); model != "" {
		opts = append(opts, ai.WithExtractorModel(model))
	}
	return opts
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no files to ingest; usage: casefile ingest [flags] FILE [FILE...]")
	}

	fc, err := loadFileConfig(c.String("config"))
	if err != nil {
		return err
	}
	config, err := aiConfig(fc, aiOverrides(c)...)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, casefile.WithAIConfig(config))
	if err != nil {
		return err
	}
	defer db.Close()

	pipeOpts := thresholdOptions(fc)
	if workers := c.Int("workers"); workers > 0 {
		pipeOpts = append(pipeOpts, pipeline.WithPoolSize(workers))
	}
	pipe, err := db.NewIngestionPipeline(pipeOpts...)
	if err != nil {
		return err
	}
	defer pipe.Release()

	subs := make([]*pipeline.Submission, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		subs = append(subs, &pipeline.Submission{
			Filename: filepath.Base(path),
			Data:     data,
			Origin:   c.String("origin"),
			Caption:  c.String("caption"),
		})
	}

	results := pipe.SubmitAll(c.Context, subs)

	failures := 0
	for i, result := range results {
		name := subs[i].Filename
		if result.Err != nil {
			failures++
			color.Red("%s: %v", name, result.Err)
			continue
		}
		printDecision(name, result.Decision)
		if result.Decision.Status == core.StatusFailed {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d submissions failed", failures, len(subs))
	}
	return nil
}

func printDecision(name string, d *pipeline.Decision) {
	switch d.Status {
	case core.StatusAccepted:
		color.Green("%s: accepted as document %d", name, d.DocumentId)
		if d.Scores != nil {
			fmt.Printf("  micro=%d macro=%d legal=%d relevancy=%d\n",
				d.Scores.Micro, d.Scores.Macro, d.Scores.Legal, d.Scores.Relevancy)
		}
	case core.StatusDuplicateOf:
		color.Yellow("%s: duplicate of document %d (resolved by %s tier)",
			name, d.MatchedId, d.Resolved)
	case core.StatusNeedsReview:
		color.Red("%s: needs review (document %d)", name, d.DocumentId)
		for _, cand := range d.Candidates {
			fmt.Printf("  candidate %d similarity=%.3f\n", cand.DocumentId, cand.Similarity)
		}
	default:
		color.Red("%s: %s (document %d)", name, d.Status, d.DocumentId)
	}
}

func claimsAddCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	claim := &core.ClaimDefinition{
		Text:                 c.String("text"),
		ClaimType:            c.String("type"),
		Keywords:             c.StringSlice("keyword"),
		ExpectedEvidenceType: c.String("evidence-type"),
		Weight:               c.Int("weight"),
	}
	if from := c.Timestamp("from"); from != nil {
		claim.DateFrom = *from
	}
	if to := c.Timestamp("to"); to != nil {
		claim.DateTo = *to
	}

	added, err := db.ClaimRepository().AddClaims(c.Context, claim)
	if err != nil {
		return err
	}

	slog.Info("claim registered", "id", added[0].Id, "type", added[0].ClaimType)
	fmt.Printf("claim %d registered\n", added[0].Id)
	return nil
}

func claimsListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	claims, err := db.ClaimRepository().ListClaims(c.Context)
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		fmt.Println("no claims registered")
		return nil
	}

	for _, claim := range claims {
		fmt.Printf("%d  [%s]  %s\n", claim.Id, claim.ClaimType, claim.Text)
		if !claim.DateFrom.IsZero() || !claim.DateTo.IsZero() {
			fmt.Printf("    dates: %s .. %s\n",
				formatDate(claim.DateFrom), formatDate(claim.DateTo))
		}
		if len(claim.Keywords) > 0 {
			fmt.Printf("    keywords: %v\n", claim.Keywords)
		}
		if claim.ExpectedEvidenceType != "" {
			fmt.Printf("    expected evidence: %s\n", claim.ExpectedEvidenceType)
		}
	}
	return nil
}

func claimsReportCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	claimId := core.ID(c.Uint64("claim-id"))
	claim, err := db.ClaimRepository().GetClaim(c.Context, claimId)
	if err != nil {
		return fmt.Errorf("claim %d: %w", claimId, err)
	}

	correlator := db.NewCorrelator()
	stats, err := correlator.Stats(c.Context, claimId)
	if err != nil {
		return err
	}

	fmt.Printf("claim %d [%s]: %s\n\n", claim.Id, claim.ClaimType, claim.Text)
	fmt.Printf("documents correlated:   %d\n", stats.DocumentCount)
	fmt.Printf("average contradiction:  %.1f\n", stats.AverageContradiction)
	fmt.Printf("direct contradictions:  %d\n", stats.DirectContradictions)
	fmt.Printf("corroborating docs:     %d\n", stats.CorroboratingDocs)
	printProsecutability(stats.Prosecutability)

	top, err := correlator.TopContradictions(c.Context, claimId, c.Int("top"))
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}

	fmt.Println("\ntop contradicting documents:")
	for _, rec := range top {
		fmt.Printf("  document %d  score=%d  keywords=%d  date_relevance=%d  type_bonus=%d\n",
			rec.DocumentId, rec.ContradictionScore, rec.KeywordMatches,
			rec.DateRelevance, rec.TypeMatchBonus)
	}
	return nil
}

func printProsecutability(score int) {
	paint := color.Red
	switch {
	case score >= 70:
		paint = color.Green
	case score >= 40:
		paint = color.Yellow
	}
	paint("prosecutability:        %d / 100", score)
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: casefile show --db PATH DOCUMENT_ID")
	}
	rawId, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", c.Args().First(), err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	docs := db.DocumentRepository()
	doc, err := docs.GetDocument(c.Context, core.ID(rawId))
	if err != nil {
		return fmt.Errorf("document %d: %w", rawId, err)
	}

	fmt.Printf("document %d: %s\n", doc.Id, doc.Filename)
	fmt.Printf("status:       %s\n", doc.Status)
	fmt.Printf("content hash: %s\n", doc.ContentHash)
	if doc.Category != "" {
		fmt.Printf("category:     %s\n", doc.Category)
	}
	if doc.DocDate != nil {
		fmt.Printf("doc date:     %s\n", formatDate(*doc.DocDate))
	}
	fmt.Printf("ingested:     %s\n", doc.IngestedAt.Format(time.RFC3339))
	for _, src := range doc.Sources {
		fmt.Printf("source:       %s (%s)\n", src.Id, src.Origin)
	}

	edges, err := docs.GetDuplicateEdges(c.Context, doc.Id)
	if err != nil {
		return err
	}
	if len(edges) > 0 {
		fmt.Println("\ntier trail:")
		for _, edge := range edges {
			fmt.Printf("  %-8s  %-9s  similarity=%.3f", edge.Tier, edge.Decision, edge.Similarity)
			if edge.MatchedId != 0 {
				fmt.Printf("  matched=%d", edge.MatchedId)
			}
			fmt.Println()
		}
	}

	score, err := docs.GetScoreRecord(c.Context, doc.Id)
	if err == nil {
		fmt.Printf("\nscores: micro=%d macro=%d legal=%d relevancy=%d\n",
			score.Micro, score.Macro, score.Legal, score.Relevancy)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format("2006-01-02")
}
