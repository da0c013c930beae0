package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the list of networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in oracle.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := "  "
		if network.Name == result.Current {
			marker = color.New(color.FgGreen).Sprint("▸ ")
		}

		if network.Error != nil {
			fmt.Fprintf(r.out, "%s❌ %s - Error: %v\n", marker, network.Name, network.Error)
			continue
		}

		signer := color.New(color.FgGreen).Sprint("key configured")
		if !network.HasSigner {
			signer = color.New(color.FgYellow).Sprint("no key")
		}
		fmt.Fprintf(r.out, "%s✅ %s - Chain ID: %d (%s)\n", marker, network.Name, network.ChainID, signer)
		if network.ExplorerURL != "" {
			fmt.Fprintf(r.out, "     %s\n", color.New(color.Faint).Sprint(network.ExplorerURL))
		}
	}

	return nil
}
