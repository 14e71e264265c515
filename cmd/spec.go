package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/vknit/machine"
)

var specInput string // Specification YAML to validate and print

// specCmd prints a machine specification with every default filled in
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the machine specification as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printSpecification(specInput, os.Stdout); err != nil {
			logrus.Fatalf("Invalid machine spec: %v", err)
		}
	},
}

// printSpecification writes the default specification, or the one at path
// after defaults are applied and it is validated.
func printSpecification(path string, w io.Writer) error {
	spec := machine.DefaultSpecification()
	if path != "" {
		loaded, err := machine.LoadSpecification(path)
		if err != nil {
			return err
		}
		spec = loaded
	}
	data, err := spec.YAML()
	if err != nil {
		return fmt.Errorf("rendering machine spec: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	specCmd.Flags().StringVar(&specInput, "spec", "", "Machine specification YAML to validate (default: built-in)")
	rootCmd.AddCommand(specCmd)
}
