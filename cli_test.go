package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v3"
)

// mockApp records the Applicator calls made by the CLI actions.
type mockApp struct {
	calls []string
}

func (m *mockApp) TestConnection(ctx context.Context) error {
	m.calls = append(m.calls, "test-connection")
	return nil
}

func (m *mockApp) ListTables(ctx context.Context) error {
	m.calls = append(m.calls, "list-tables")
	return nil
}

func (m *mockApp) DescribeTable(ctx context.Context, table string) error {
	m.calls = append(m.calls, fmt.Sprintf("describe-table %s", table))
	return nil
}

func (m *mockApp) SampleData(ctx context.Context, table string, rows int) error {
	m.calls = append(m.calls, fmt.Sprintf("sample-data %s %d", table, rows))
	return nil
}

func (m *mockApp) AnalyzeProspects(ctx context.Context) error {
	m.calls = append(m.calls, "analyze-prospects")
	return nil
}

func (m *mockApp) FindMusicSponsors(ctx context.Context) error {
	m.calls = append(m.calls, "find-music-sponsors")
	return nil
}

func (m *mockApp) MatchArtists(ctx context.Context, artistsFile string, minSpend float64) error {
	m.calls = append(m.calls, fmt.Sprintf("match-artists %q %.0f", artistsFile, minSpend))
	return nil
}

func (m *mockApp) Lookalike(ctx context.Context) error {
	m.calls = append(m.calls, "lookalike")
	return nil
}

func (m *mockApp) ScoreProspects(ctx context.Context) error {
	m.calls = append(m.calls, "score-prospects")
	return nil
}

func (m *mockApp) Engagement(ctx context.Context) error {
	m.calls = append(m.calls, "engagement")
	return nil
}

func TestBuildCLI(t *testing.T) {

	tests := []struct {
		name      string
		args      []string
		wantCalls []string
		wantErr   bool
	}{
		{
			name:      "test connection",
			args:      []string{"prospector", "test-connection"},
			wantCalls: []string{"test-connection"},
		},
		{
			name:      "list tables alias",
			args:      []string{"prospector", "lt"},
			wantCalls: []string{"list-tables"},
		},
		{
			name:      "describe table",
			args:      []string{"prospector", "describe-table", "-t", "accounts"},
			wantCalls: []string{"describe-table accounts"},
		},
		{
			name:    "describe table requires a table",
			args:    []string{"prospector", "describe-table"},
			wantErr: true,
		},
		{
			name:      "sample data with row count",
			args:      []string{"prospector", "sample-data", "-t", "contacts", "-n", "3"},
			wantCalls: []string{"sample-data contacts 3"},
		},
		{
			name:      "sample data default rows",
			args:      []string{"prospector", "sd", "-t", "brands"},
			wantCalls: []string{"sample-data brands 5"},
		},
		{
			name:      "analyze prospects",
			args:      []string{"prospector", "analyze-prospects"},
			wantCalls: []string{"analyze-prospects"},
		},
		{
			name:      "find music sponsors",
			args:      []string{"prospector", "find-music-sponsors"},
			wantCalls: []string{"find-music-sponsors"},
		},
		{
			name:      "match artists with flags",
			args:      []string{"prospector", "match-artists", "--artists", "roster.xlsx", "--min-spend", "2000000"},
			wantCalls: []string{`match-artists "roster.xlsx" 2000000`},
		},
		{
			name:      "match artists defaults",
			args:      []string{"prospector", "ma"},
			wantCalls: []string{`match-artists "" 0`},
		},
		{
			name:      "lookalike",
			args:      []string{"prospector", "lookalike"},
			wantCalls: []string{"lookalike"},
		},
		{
			name:      "score prospects",
			args:      []string{"prospector", "score-prospects"},
			wantCalls: []string{"score-prospects"},
		},
		{
			name:      "engagement",
			args:      []string{"prospector", "engagement"},
			wantCalls: []string{"engagement"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{}
			build := func(ctx context.Context, c *cli.Command) (Applicator, error) {
				return mock, nil
			}
			cmd := BuildCLI(build)
			err := cmd.Run(context.Background(), tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if diff := cmp.Diff(tt.wantCalls, mock.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestBuildCLIBuilderError checks that a failing app build aborts the
// command.
func TestBuildCLIBuilderError(t *testing.T) {
	build := func(ctx context.Context, c *cli.Command) (Applicator, error) {
		return nil, fmt.Errorf("no database")
	}
	cmd := BuildCLI(build)
	err := cmd.Run(context.Background(), []string{"prospector", "engagement"})
	if err == nil {
		t.Fatal("expected error, got none")
	}
}
