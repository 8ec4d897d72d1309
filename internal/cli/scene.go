package cli

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sirup/config"
)

func (c *CLI) sceneCommand() *cobra.Command {
	var (
		scenePath string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Print a scene description",
		Long:  `Print the built-in bar scene, or a validated scene file, as TOML or YAML. The output can be edited and passed back with --scene.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := config.Load(scenePath)
			if err != nil {
				return err
			}
			c.Logger.Debug("scene", "cups", len(s.Cups), "bottles", len(s.Bottles))
			return config.Encode(cmd.OutOrStdout(), s, f)
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene file to normalize, default bar scene when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml or yaml")

	return cmd
}
