package engine_test

import (
	"testing"

	"planbord/internal/domain"
)

func TestUpdateTypeConfigKeepsKey(t *testing.T) {
	env := newTestEnv(t)
	name := "Spray shop"
	color := "#123456"
	cfg, err := env.Engine.UpdateTypeConfig(domain.TypePaint, &name, &color)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cfg.Key != domain.TypePaint || cfg.Name != "Spray shop" || cfg.Color != "#123456" {
		t.Fatalf("config = %+v", cfg)
	}
	if _, err := env.Engine.UpdateTypeConfig("vans", &name, nil); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestTemplateEditingRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	before, err := env.Engine.Store.GetTypeConfig(domain.TypePaint)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := env.Engine.ReorderTemplate(domain.TypePaint, 1, 4)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if cfg.TaskTemplates[4].Title != before.TaskTemplates[1].Title {
		t.Fatalf("template did not land at index 4")
	}
	cfg, err = env.Engine.ReorderTemplate(domain.TypePaint, 4, 1)
	if err != nil {
		t.Fatalf("reorder back: %v", err)
	}
	for i := range cfg.TaskTemplates {
		if cfg.TaskTemplates[i].Title != before.TaskTemplates[i].Title {
			t.Fatalf("round trip broke order at %d", i)
		}
	}
}

func TestAddTemplateValidatesDependencies(t *testing.T) {
	env := newTestEnv(t)
	cfg, err := env.Engine.Store.GetTypeConfig(domain.TypeRepair)
	if err != nil {
		t.Fatal(err)
	}
	n := len(cfg.TaskTemplates)

	if _, err := env.Engine.AddTemplate(domain.TypeRepair, domain.TaskTemplate{
		Title: "Final wash", ResourceType: domain.ResourceWorkshop, Dependencies: []int{n},
	}); err == nil {
		t.Fatalf("expected out-of-range dependency error")
	}
	got, err := env.Engine.AddTemplate(domain.TypeRepair, domain.TaskTemplate{
		Title: "Final wash", ResourceType: domain.ResourceWorkshop, Dependencies: []int{n - 1},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(got.TaskTemplates) != n+1 {
		t.Fatalf("template count = %d, want %d", len(got.TaskTemplates), n+1)
	}
}

func TestRemoveTemplateDropsDependents(t *testing.T) {
	env := newTestEnv(t)
	cfg, err := env.Engine.RemoveTemplate(domain.TypePaint, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	for i, tmpl := range cfg.TaskTemplates {
		for _, d := range tmpl.Dependencies {
			if d < 0 || d >= len(cfg.TaskTemplates) {
				t.Fatalf("template %d has dangling dependency %d", i, d)
			}
		}
	}
}

func TestTemplateDependencyEdits(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Engine.AddTemplateDependency(domain.TypePaint, 2, 2); err == nil {
		t.Fatalf("expected self-dependency rejection")
	}
	cfg, err := env.Engine.AddTemplateDependency(domain.TypePaint, 2, 0)
	if err != nil {
		t.Fatalf("add dep: %v", err)
	}
	found := false
	for _, d := range cfg.TaskTemplates[2].Dependencies {
		if d == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("dependency 0 missing from template 2: %v", cfg.TaskTemplates[2].Dependencies)
	}
	if _, err := env.Engine.RemoveTemplateDependency(domain.TypePaint, 2, 0); err != nil {
		t.Fatalf("remove dep: %v", err)
	}
}
