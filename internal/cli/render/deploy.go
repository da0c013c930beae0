package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

var (
	labelStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgCyan, color.Bold)
	linkStyle    = color.New(color.FgBlue, color.Underline)
)

// DeployRenderer renders deployment results
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderOracle renders the result of deploying the Oracle.
// runErr is the error returned alongside the result, if any.
func (r *DeployRenderer) RenderOracle(result *usecase.DeployOracleResult, runErr error) error {
	if result == nil {
		return nil
	}

	fmt.Fprintln(r.out)
	r.renderDeployment(result.Network, result.Deployment)
	r.renderOutcome(result.Recorded, result.OutputFile, runErr)
	return nil
}

// RenderPriceSource renders the result of deploying a price source
func (r *DeployRenderer) RenderPriceSource(result *usecase.DeployPriceSourceResult, runErr error) error {
	if result == nil {
		return nil
	}

	fmt.Fprintln(r.out)
	r.renderDeployment(result.Network, result.Deployment)
	r.field("Oracle", addressStyle.Sprint(result.Oracle))
	if result.Registration != nil {
		r.field("Oracle updated", result.Registration.TxHash.Hex())
		if link := txLink(result.Network.ExplorerURL, result.Registration.TxHash.Hex()); link != "" {
			r.field("", linkStyle.Sprint(link))
		}
	}
	r.field("Sources", fmt.Sprintf("%d registered", len(result.Output.Sources)))
	r.renderOutcome(result.Recorded, result.OutputFile, runErr)
	return nil
}

func (r *DeployRenderer) renderDeployment(network *config.Network, deployment *models.DeploymentResult) {
	if deployment == nil {
		return
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed to %s (chain %d)",
		deployment.ContractName, network.Name, network.ChainID)))
	r.field("Address", addressStyle.Sprint(deployment.Address.Hex()))
	if link := explorerLink(network.ExplorerURL, deployment.Address.Hex()); link != "" {
		r.field("", linkStyle.Sprint(link))
	}
	r.field("Transaction", deployment.TxHash.Hex())
	r.field("Block", fmt.Sprintf("%d", deployment.BlockNumber))
	r.field("Gas used", fmt.Sprintf("%d", deployment.GasUsed))
}

func (r *DeployRenderer) renderOutcome(recorded bool, outputFile string, runErr error) {
	fmt.Fprintln(r.out)
	if recorded {
		fmt.Fprintln(r.out, FormatSuccess("Recorded in "+outputFile))
		return
	}

	var notRecorded *domain.DeploymentNotRecordedError
	if errors.As(runErr, &notRecorded) {
		if errors.Is(runErr, domain.ErrSetterFailed) {
			fmt.Fprintln(r.out, FormatWarning("The Oracle source list was not updated and nothing was written to "+outputFile))
			r.field("Unregistered", addressStyle.Sprint(notRecorded.Address))
			return
		}
		fmt.Fprintln(r.out, FormatWarning("The deployment was not written to "+outputFile))
		fmt.Fprintln(r.out, FormatWarning("Record this entry manually:"))
		fmt.Fprintf(r.out, "  %q: {\"Oracle\": %q, \"Sources\": %s}\n",
			domain.ChainKey(notRecorded.ChainID), notRecorded.Output.Oracle, quoteList(notRecorded.Output.Sources))
	}
}

func (r *DeployRenderer) field(label, value string) {
	if label == "" {
		fmt.Fprintf(r.out, "  %-16s %s\n", "", value)
		return
	}
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-16s", label+":"), value)
}

func quoteList(items []string) string {
	out := "["
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", item)
	}
	return out + "]"
}
