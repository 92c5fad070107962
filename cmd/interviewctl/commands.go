// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/voice-interview/models"
)

const defaultServer = "http://localhost:3318"

type globalOptions struct {
	serverURL string
	timeout   time.Duration
	jsonOut   bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{
		serverURL: os.Getenv("INTERVIEW_SERVER"),
		timeout:   15 * time.Second,
	}

	cmd := &cobra.Command{
		Use:           "interviewctl",
		Short:         "Operate the voice interview server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", opts.serverURL, "Server base URL (env INTERVIEW_SERVER)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", opts.timeout, "HTTP request timeout")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print raw JSON responses")

	cmd.AddCommand(newCallCommand(opts))
	cmd.AddCommand(newSessionsCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	return cmd
}

func newCallCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <phone-number>",
		Short: "Place an outbound interview call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(models.MakeCallRequest{PhoneNumber: args[0]})
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}

			var resp models.MakeCallResponse
			raw, err := opts.do(http.MethodPost, "/calls", bytes.NewReader(body), &resp)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				_, err = out.Write(raw)
				return err
			}

			fmt.Fprintf(out, "Call placed to %s\n", resp.PhoneNumber)
			fmt.Fprintf(out, "  call_sid: %s\n", resp.CallSID)
			if !resp.Seeded {
				fmt.Fprintln(out, "  warning: the server could not record the call yet")
			}
			return nil
		},
	}
}

func newSessionsCommand(opts *globalOptions) *cobra.Command {
	var callSID, status string
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List call session records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if callSID != "" {
				q.Set("call_sid", callSID)
			}
			if status != "" {
				q.Set("status", status)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			path := "/sessions"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var resp models.SessionListResponse
			raw, err := opts.do(http.MethodGet, path, nil, &resp)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				_, err = out.Write(raw)
				return err
			}
			return printSessions(out, resp, time.Now())
		},
	}

	cmd.Flags().StringVar(&callSID, "call-sid", "", "Only records for this call")
	cmd.Flags().StringVar(&status, "status", "", "Only records with this call status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records")
	return cmd
}

func newStatsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show call counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var stats models.SessionStats
			raw, err := opts.do(http.MethodGet, "/sessions/stats", nil, &stats)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				_, err = out.Write(raw)
				return err
			}

			fmt.Fprintf(out, "Calls:       %s\n", humanize.Comma(int64(stats.Total)))
			fmt.Fprintf(out, "Completed:   %s\n", humanize.Comma(int64(stats.Completed)))
			fmt.Fprintf(out, "In progress: %s\n", humanize.Comma(int64(stats.InProgress)))
			return nil
		},
	}
}

func printSessions(out io.Writer, resp models.SessionListResponse, now time.Time) error {
	if resp.Count == 0 {
		_, err := fmt.Fprintln(out, "No sessions")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CALL\tQUESTION\tSTATUS\tTRANSCRIPT\tCREATED")
	for _, s := range resp.Sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.CallSID,
			truncate(s.Question, 40),
			s.CallStatus,
			s.TranscriptStatus,
			humanize.RelTime(s.CreatedAt, now, "ago", "from now"),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%s session(s)\n", humanize.Comma(int64(resp.Count)))
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// do sends one request and decodes a 2xx JSON body into v.
// The raw body is returned for --json output.
func (o *globalOptions) do(method, path string, body io.Reader, v any) ([]byte, error) {
	server := strings.TrimSpace(o.serverURL)
	if server == "" {
		server = defaultServer
	}
	server = strings.TrimSuffix(server, "/")

	req, err := http.NewRequest(method, server+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: o.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e models.ErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Message)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}
