package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how recorded deployments are printed
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

var (
	chainHeader = color.New(color.BgCyan, color.FgBlack, color.Bold)
	faintStyle  = color.New(color.Faint)
)

// ShowRenderer renders the recorded deployments
type ShowRenderer struct {
	out    io.Writer
	format OutputFormat
}

// NewShowRenderer creates a new show renderer
func NewShowRenderer(out io.Writer, format OutputFormat) *ShowRenderer {
	return &ShowRenderer{out: out, format: format}
}

// Render prints result in the configured format
func (r *ShowRenderer) Render(result *usecase.ShowDeploymentsResult) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(outputMap(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(r.out, string(data))
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(outputMap(result)); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return r.renderTable(result)
	}
}

func (r *ShowRenderer) renderTable(result *usecase.ShowDeploymentsResult) error {
	if len(result.Chains) == 0 {
		fmt.Fprintf(r.out, "No deployments recorded in %s\n", result.OutputFile)
		return nil
	}

	for i, chain := range result.Chains {
		if i > 0 {
			fmt.Fprintln(r.out)
		}

		title := fmt.Sprintf(" chain %s ", chain.ChainKey)
		if chain.NetworkName != "" {
			title = fmt.Sprintf(" %s (chain %s) ", chain.NetworkName, chain.ChainKey)
		}
		fmt.Fprintln(r.out, chainHeader.Sprint(title))

		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateColumns = false
		t.Style().Options.SeparateHeader = false
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignLeft},
			{Number: 2, Align: text.AlignLeft},
			{Number: 3, Align: text.AlignLeft},
		})

		t.AppendRow(table.Row{domain.OracleContractName, chain.Output.Oracle, faintStyle.Sprint(explorerLink(chain.ExplorerURL, chain.Output.Oracle))})
		if len(chain.Output.Sources) == 0 {
			t.AppendRow(table.Row{"Sources", faintStyle.Sprint("(none)"), ""})
		}
		for j, source := range chain.Output.Sources {
			t.AppendRow(table.Row{fmt.Sprintf("Sources[%d]", j), source, faintStyle.Sprint(explorerLink(chain.ExplorerURL, source))})
		}

		fmt.Fprintln(r.out, t.Render())

		if dups := chain.Output.DuplicateSources(); len(dups) > 0 {
			for _, dup := range dups {
				fmt.Fprintln(r.out, FormatWarning("source registered more than once: "+dup))
			}
		}
	}

	return nil
}

// outputMap rebuilds the chain-keyed shape of the output file
func outputMap(result *usecase.ShowDeploymentsResult) map[string]domain.OracleOutput {
	out := make(map[string]domain.OracleOutput, len(result.Chains))
	for _, chain := range result.Chains {
		out[chain.ChainKey] = chain.Output
	}
	return out
}
