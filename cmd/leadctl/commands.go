package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stwalsh4118/leadrank/internal/classify"
	"github.com/stwalsh4118/leadrank/internal/config"
	"github.com/stwalsh4118/leadrank/internal/database"
	"github.com/stwalsh4118/leadrank/internal/engine"
	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/matching"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/parcel"
	"github.com/stwalsh4118/leadrank/internal/repository"
	"github.com/stwalsh4118/leadrank/internal/worker"
)

type parsedKey struct {
	Canonical string           `json:"canonical"`
	Parcel    parcel.ParcelKey `json:"parcel"`
}

type classifyOutput struct {
	classify.Classification
	InJurisdiction bool `json:"in_jurisdiction"`
}

// matchInput is the document read by "leadctl match".
type matchInput struct {
	Leads     []engine.LeadInput `json:"leads"`
	Investors []models.Investor  `json:"investors"`
}

type matchOutput struct {
	engine.LeadMatches
	Summary matching.Summary `json:"summary"`
}

type refreshOutput struct {
	Scanned   int    `json:"scanned"`
	Updated   int    `json:"updated"`
	Escalated int64  `json:"escalated"`
	Elapsed   string `json:"elapsed"`
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Extract every tax map key from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			keys := parcel.FindAll(text)
			if len(keys) == 0 {
				return fmt.Errorf("no parcel key found in %q", text)
			}

			out := make([]parsedKey, len(keys))
			for i, k := range keys {
				out[i] = parsedKey{Canonical: k.String(), Parcel: k}
			}
			return c.writeJSON(cmd, out)
		},
	}
}

func (c *cli) classifyCmd() *cobra.Command {
	var parcelKey string
	cmd := &cobra.Command{
		Use:   "classify <address>",
		Short: "Label an address with island, region and property class",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			address := strings.Join(args, " ")
			return c.writeJSON(cmd, classifyOutput{
				Classification: eng.ClassifyProperty(address, parcelKey),
				InJurisdiction: eng.ValidateAddress(address),
			})
		},
	}
	cmd.Flags().StringVar(&parcelKey, "parcel", "", "tax map key, overrides island keywords")
	return cmd
}

func (c *cli) scoreCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one lead object or an array of them",
		Long: "Reads {property, contact, lead} JSON, or an array of such objects, " +
			"and prints the score, classification and priority of each.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			if !isArray(data) {
				var in engine.LeadInput
				if err := decodeStrict(data, &in); err != nil {
					return err
				}
				return c.writeJSON(cmd, eng.Evaluate(in))
			}

			var inputs []engine.LeadInput
			if err := decodeStrict(data, &inputs); err != nil {
				return err
			}
			out := eng.ScoreLeads(cmd.Context(), inputs)
			if len(out) < len(inputs) {
				return fmt.Errorf("interrupted after %d of %d leads: %w", len(out), len(inputs), cmd.Context().Err())
			}
			c.log.Info("Scored leads", logger.Fields{"count": len(out), "workers": eng.Workers()})
			return c.writeJSON(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input JSON file, - for stdin")
	return cmd
}

func (c *cli) matchCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match leads against an investor list",
		Long:  `Reads {"leads": [...], "investors": [...]} JSON and prints ranked matches per lead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			var in matchInput
			if err := decodeStrict(data, &in); err != nil {
				return err
			}

			results := eng.MatchLeads(cmd.Context(), in.Leads, in.Investors)
			if len(results) < len(in.Leads) {
				return fmt.Errorf("interrupted after %d of %d leads: %w", len(results), len(in.Leads), cmd.Context().Err())
			}

			out := make([]matchOutput, len(results))
			accepted := 0
			for i, r := range results {
				out[i] = matchOutput{LeadMatches: r, Summary: matching.Summarize(r.Matches)}
				accepted += out[i].Summary.TotalMatches
			}
			c.log.Info("Matched leads", logger.Fields{
				"leads":     len(in.Leads),
				"investors": len(in.Investors),
				"accepted":  accepted,
			})
			return c.writeJSON(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input JSON file, - for stdin")
	return cmd
}

func (c *cli) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Run one priority refresh pass against the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := database.NewPostgresPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			w := worker.NewPriorityRefresher(repository.NewPropertyRepository(db), c.log, cfg.Refresher.Interval, cfg.Refresher.BatchSize)
			stats, err := w.RunOnce(ctx)
			if err != nil {
				return err
			}
			return c.writeJSON(cmd, refreshOutput{
				Scanned:   stats.Scanned,
				Updated:   stats.Updated,
				Escalated: stats.Escalated,
				Elapsed:   stats.Elapsed.String(),
			})
		},
	}
}

// decodeStrict decodes data into v, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}
	return nil
}
