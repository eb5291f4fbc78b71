package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yairfalse/virta/config"
	"github.com/yairfalse/virta/policy"
	"github.com/yairfalse/virta/providers/aws"
	"github.com/yairfalse/virta/storage"
	"github.com/yairfalse/virta/subscriber"
	"github.com/yairfalse/virta/telemetry"
	"github.com/yairfalse/virta/wal"
)

// PlanCommand runs one full subscription pass
type PlanCommand struct {
	ConfigPath   string
	TemplatePath string
	OutputPath   string
	PolicyPath   string
	AuditDir     string
	StoreDir     string
	OTELEndpoint string
	Debug        bool
}

// Run loads everything, validates the forwarder, plans the pass and
// merges the patch back into the template
func (p *PlanCommand) Run(ctx context.Context) error {
	if p.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if p.OTELEndpoint != "" {
		shutdown, err := telemetry.InitOTEL(ctx, telemetry.Config{
			ServiceName:    "virta",
			ServiceVersion: version,
			OTELEndpoint:   p.OTELEndpoint,
			Insecure:       true,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() { _ = shutdown(ctx) }()
	}

	logger := telemetry.NewLogger("virta")

	cfg, err := config.LoadConfig(p.ConfigPath)
	if err != nil {
		return err
	}

	resolved, err := config.ResolveLogging(cfg.Logging)
	if err != nil {
		return err
	}

	tmpl, err := loadTemplate(p.TemplatePath)
	if err != nil {
		return err
	}
	graph := tmpl.Graph

	clients, err := aws.NewClients(ctx, cfg.Region)
	if err != nil {
		return err
	}

	logger.LogPassStart(ctx, cfg.Service, cfg.Stage, len(graph))

	input := buildInput(cfg, resolved)

	// Forwarder validation is the one fatal gate: everything wired
	// afterwards would point at nothing.
	validator := subscriber.NewValidator(clients.Functions)
	warnings, err := validator.ValidateForwarder(ctx, input.Destination, cfg.Forwarder.IntegrationTesting)
	if err != nil {
		return err
	}

	exclusions, err := p.loadPolicy(ctx, cfg)
	if err != nil {
		return err
	}

	engine := subscriber.NewEngine(clients.Logs, exclusions)
	plan := engine.Plan(ctx, graph, input)
	warnings = append(warnings, plan.Warnings...)

	executionPatch := subscriber.SynthesizeExecutionLogGroups(input)
	graph.Apply(executionPatch)
	graph.Apply(plan.Patch)

	for _, warning := range warnings {
		logger.WithContext(ctx).Warn().Msg(warning)
	}

	if err := tmpl.Save(p.OutputPath); err != nil {
		return err
	}

	if err := p.journalPass(cfg, plan, warnings); err != nil {
		return err
	}

	return p.recordPass(cfg, plan, warnings)
}

// loadPolicy compiles the optional exclusion policy
func (p *PlanCommand) loadPolicy(ctx context.Context, cfg *config.Config) (subscriber.ExclusionPolicy, error) {
	if p.PolicyPath == "" {
		return nil, nil
	}

	engine := policy.NewEngine(cfg.Service, cfg.Stage)
	if err := engine.LoadPolicyFile(ctx, p.PolicyPath); err != nil {
		return nil, err
	}
	return engine, nil
}

// journalPass writes the decision trail when auditing is enabled
func (p *PlanCommand) journalPass(cfg *config.Config, plan *subscriber.Plan, warnings []string) error {
	if p.AuditDir == "" {
		return nil
	}

	journal, err := wal.Open(p.AuditDir)
	if err != nil {
		return err
	}
	defer func() { _ = journal.Close() }()

	if err := journal.Append(wal.EntryPassStarted, "", map[string]string{
		"service": cfg.Service,
		"stage":   cfg.Stage,
	}); err != nil {
		return err
	}

	for _, decision := range plan.Decisions {
		if err := journal.Append(wal.EntryDecided, decision.ResourceID, decision); err != nil {
			return err
		}
	}

	return journal.Append(wal.EntryPassCompleted, "", map[string]int{
		"planned":  len(plan.Patch),
		"warnings": len(warnings),
	})
}

// recordPass stores the pass summary when history is enabled
func (p *PlanCommand) recordPass(cfg *config.Config, plan *subscriber.Plan, warnings []string) error {
	if p.StoreDir == "" {
		return nil
	}

	store, err := storage.Open(p.StoreDir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	skipped := 0
	for _, decision := range plan.Decisions {
		if decision.IsSkip() {
			skipped++
		}
	}

	_, err = store.RecordPass(storage.PassRecord{
		Service:   cfg.Service,
		Stage:     cfg.Stage,
		Planned:   len(plan.Patch),
		Skipped:   skipped,
		Warnings:  warnings,
		Decisions: plan.Decisions,
	})
	return err
}

// buildInput maps the loaded configuration onto one engine input
func buildInput(cfg *config.Config, resolved config.Resolved) subscriber.Input {
	return subscriber.Input{
		Destination:            cfg.Forwarder.Destination,
		Extension:              cfg.Forwarder.Extension,
		IntegrationTesting:     cfg.Forwarder.IntegrationTesting,
		SubscribeAccessLogs:    cfg.Forwarder.SubscribeAccessLogs,
		SubscribeExecutionLogs: cfg.Forwarder.SubscribeExecutionLogs,
		RestAccess:             resolved.RestAccess,
		RestExecution:          resolved.RestExecution,
		HTTPAccess:             resolved.HTTPAccess,
		WebsocketAccess:        resolved.WebsocketAccess,
		WebsocketExecution:     resolved.WebsocketExecution,
		Handlers:               cfg.Handlers,
		StackName:              cfg.StackName,
		Service:                cfg.Service,
		Stage:                  cfg.Stage,
		RestAPIID:              cfg.RestAPIID(),
		WebsocketAPIID:         cfg.WebsocketAPIID(),
	}
}
