// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/hub/catalog"
	"github.com/ewcloud/ewccli/internal/hub/inputs"
	"github.com/ewcloud/ewccli/internal/i18n"
	"github.com/ewcloud/ewccli/internal/logging"
)

func newHubCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "hub",
		Annotations: i18nShort("hub.short"),
	}
	cmd.AddCommand(newHubValidateCmd(a), newHubPlanCmd(a))
	return cmd
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(a.fs, a.cfg.HubItemsPath())
}

func (a *app) item(name string) (*catalog.Item, error) {
	c, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	item, ok := c.Get(name)
	if !ok {
		msg := i18n.T("hub.item_not_found", name, a.cfg.HubItemsPath())
		if names := c.Names(); len(names) > 0 {
			msg += "\n" + i18n.T("hub.available_items", strings.Join(names, ", "))
		}
		return nil, &errs.ValidationError{Field: "item", Msg: msg}
	}
	return item, nil
}

// itemInputFlags holds the repeated --item-input flag values.
type itemInputFlags struct {
	pairs []string
}

func (f *itemInputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.pairs, "item-input", "i", nil,
		"Item input as key=value; repeat the flag to give a list input several values")
}

// checkItemInputs parses the flag values and runs the required and type
// checks for item. With all set every type mismatch is reported.
func checkItemInputs(item *catalog.Item, pairs []string, all bool) (inputs.Raw, error) {
	schema := item.Schema()
	raw, err := inputs.ParseAssignments(pairs, schema)
	if err != nil {
		return nil, err
	}
	if !all {
		if err := inputs.Check(raw, schema, item.RequiredSchema()); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := inputs.Check(raw, nil, item.RequiredSchema()); err != nil {
		return nil, err
	}
	if err := inputs.ValidateAll(raw, schema); err != nil {
		return nil, &errs.ValidationError{Msg: err.Error()}
	}
	return raw, nil
}

func newHubValidateCmd(a *app) *cobra.Command {
	var (
		in  itemInputFlags
		all bool
	)
	cmd := &cobra.Command{
		Use:         "validate ITEM",
		Annotations: i18nShort("hub.validate_short"),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.item(args[0])
			if err != nil {
				return err
			}
			if _, err := checkItemInputs(item, in.pairs, all); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(i18n.T("hub.inputs_valid", item.Name)))
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Report every invalid input instead of the first")
	return cmd
}

// deployPlan is what an external runner needs to deploy an item.
type deployPlan struct {
	Item       string         `yaml:"item"`
	Version    string         `yaml:"version,omitempty"`
	Source     string         `yaml:"source"`
	SourceKind string         `yaml:"source_kind"`
	Profile    string         `yaml:"profile"`
	Federee    string         `yaml:"federee"`
	Tenant     string         `yaml:"tenant_name"`
	Region     string         `yaml:"region,omitempty"`
	Inputs     map[string]any `yaml:"inputs"`
}

func newHubPlanCmd(a *app) *cobra.Command {
	var (
		in     itemInputFlags
		sel    profileSelector
		source string
	)
	cmd := &cobra.Command{
		Use:         "plan ITEM",
		Annotations: i18nShort("hub.plan_short"),
		Long: `Resolves the profile, checks that the item is deployable, validates the
item inputs and prints the resulting deployment plan as YAML. Running the
deployment itself is left to the runner consuming the plan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(sel)
			if err != nil {
				return err
			}
			item, err := a.item(args[0])
			if err != nil {
				return err
			}
			if !item.Deployable(catalog.DeployableTechnologies) {
				return &errs.ValidationError{Field: "item", Msg: i18n.T("hub.not_deployable")}
			}
			src := source
			if src == "" {
				src = item.Source
			}
			kind, err := catalog.ClassifySource(a.fs, src)
			if err != nil {
				return err
			}
			raw, err := checkItemInputs(item, in.pairs, false)
			if err != nil {
				return err
			}

			plan := deployPlan{
				Item:       item.Name,
				Version:    item.Version,
				Source:     src,
				SourceKind: string(kind),
				Profile:    p.Name,
				Federee:    p.Federee,
				Tenant:     p.TenantName,
				Region:     deref(p.Region),
				Inputs:     map[string]any(raw),
			}
			if plan.Inputs == nil {
				plan.Inputs = map[string]any{}
			}
			logging.Debugf("plan for %s uses inputs %v", item.Name, sortedKeys(plan.Inputs))
			data, err := yaml.Marshal(plan)
			if err != nil {
				return fmt.Errorf("could not encode plan: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	in.register(cmd)
	sel.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Override the item source (GitHub HTTPS URL or absolute directory)")
	return cmd
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
