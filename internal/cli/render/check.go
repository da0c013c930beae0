package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CheckRenderer renders on-chain check results
type CheckRenderer struct {
	out io.Writer
}

// NewCheckRenderer creates a new check renderer
func NewCheckRenderer(out io.Writer) *CheckRenderer {
	return &CheckRenderer{out: out}
}

// Render prints one line per recorded address
func (r *CheckRenderer) Render(result *usecase.CheckDeploymentsResult) error {
	fmt.Fprintf(r.out, "Checking recorded deployments on %s (chain %d)\n\n", result.Network.Name, result.Network.ChainID)

	title := cases.Title(language.English)
	for _, check := range result.Checks {
		status := title.String(string(check.Status))
		var icon string
		var style *color.Color
		switch check.Status {
		case usecase.CheckStatusDeployed:
			icon, style = "✓", color.New(color.FgGreen)
		case usecase.CheckStatusMissing:
			icon, style = "✗", color.New(color.FgRed)
		default:
			icon, style = "?", color.New(color.FgYellow)
		}

		line := fmt.Sprintf("  %s %-12s %s %s", style.Sprint(icon), check.Role, check.Address, style.Sprint(status))
		if check.Reason != "" {
			line += color.New(color.Faint).Sprintf(" (%s)", check.Reason)
		}
		fmt.Fprintln(r.out, line)
	}

	for _, dup := range result.Duplicates {
		fmt.Fprintln(r.out, FormatWarning("source registered more than once: "+dup))
	}

	fmt.Fprintln(r.out)
	if result.Healthy() {
		fmt.Fprintln(r.out, FormatSuccess("All recorded contracts have code on-chain"))
	}
	return nil
}
