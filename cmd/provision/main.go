package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adprov/pkg/config"
	"adprov/pkg/engine"
	"adprov/pkg/logger"
	"adprov/pkg/provision"
	"adprov/pkg/settings"
)

type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, ";") }
func (l *listFlag) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	settingsPath := flag.String("settings", os.Getenv("ADPROV_SETTINGS"), "Path to settings file")
	configPath := flag.String("config", "", "Path to the configuration workbook (xlsx or csv)")
	sheet := flag.String("sheet", "", "Sheet to read (defaults to the variant's sheet)")
	variantName := flag.String("variant", "interna", "Form variant")
	directoryPath := flag.String("directory", "", "Optional directory export to check for collisions")
	outputDir := flag.String("output", "", "Output directory (defaults to output_dir setting)")
	bundle := flag.Bool("zip", false, "Write a single zip bundle instead of separate files")
	quiet := flag.Bool("quiet", false, "Suppress log output")

	var form provision.Form
	flag.StringVar(&form.GivenName, "given", "", "Given name")
	flag.StringVar(&form.GivenName2, "given2", "", "Second given name")
	flag.StringVar(&form.FamilyName, "family", "", "Family name")
	flag.StringVar(&form.FamilyName2, "family2", "", "Second family name")
	flag.StringVar(&form.TaxCode, "tax-code", "", "Tax code")
	flag.StringVar(&form.EmployeeID, "employee-id", "", "Employee ID")
	flag.StringVar(&form.Department, "department", "", "Department code")
	flag.StringVar(&form.DepartmentLabel, "department-label", "", "Organigramma label")
	flag.StringVar(&form.MobileNumber, "mobile", "", "Mobile number without prefix")
	flag.StringVar(&form.DeviceDescription, "device", "", "Workstation name")
	flag.StringVar(&form.ExpiryDate, "expiry", "", "Expiry date dd-mm-yyyy or dd/mm/yyyy")
	flag.BoolVar(&form.Resident, "resident", false, "Resident with own fixed line")
	flag.StringVar(&form.FixedLine, "fixed-line", "", "Fixed line without prefix")
	flag.StringVar(&form.OUKey, "ou", "", "OU key")
	flag.StringVar(&form.ManagerLabel, "manager", "", "Manager label")
	flag.StringVar(&form.OperationalDate, "operational-date", "", "Date the person starts")
	var sm, groups listFlag
	flag.Var(&sm, "sm", "SM to profile on (repeatable)")
	flag.Var(&groups, "group", "Extra group (repeatable, ';' lists allowed)")
	flag.Parse()

	if *configPath == "" || form.FamilyName == "" {
		fmt.Println("Usage: provision -config <workbook> -variant <name> -given <name> -family <name> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	form.SMLines = sm
	form.ExtraGroups = groups

	log := logger.New("main")
	if *quiet {
		log = logger.Discard()
	}
	log = log.Function("main")
	if err := run(log, *settingsPath, *configPath, *sheet, *variantName, *directoryPath, *outputDir, *bundle, form); err != nil {
		log.Er("provisioning failed", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(log logger.Logger, settingsPath, configPath, sheet, variantName, directoryPath, outputDir string, bundle bool, form provision.Form) error {
	cfgSettings, err := settings.InitConfig(settingsPath)
	if err != nil {
		return err
	}
	svc := provision.NewService(cfgSettings).WithLogger(log)

	variant, err := svc.Variant(variantName)
	if err != nil {
		return err
	}
	if sheet == "" {
		sheet = variant.Sheet
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- CLI tool accepts user-provided paths
	if err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}
	cfg, err := config.Load(data, sheet)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		log.Warn("configuration warning", "warning", w)
	}

	var index *engine.DirectoryIndex
	if directoryPath != "" {
		export, err := os.ReadFile(directoryPath) // #nosec G304 -- CLI tool accepts user-provided paths
		if err != nil {
			return fmt.Errorf("read directory export: %w", err)
		}
		if index, _, err = provision.LoadDirectory(export, ""); err != nil {
			return err
		}
	}

	result, err := svc.Generate(context.Background(), cfg, variant.Name, form, index)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = cfgSettings.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if bundle {
		zipData, err := result.Bundle()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outputDir, result.BundleName()), zipData, 0o644); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}
	} else {
		for _, a := range result.Artifacts {
			if err := os.WriteFile(filepath.Join(outputDir, a.Name), a.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", a.Name, err)
			}
		}
	}

	fmt.Printf("Wrote %d files for %s to %s (review: %s)\n",
		len(result.Artifacts), result.Identity.AccountName, outputDir, result.Review.MaxSeverity)
	return nil
}
