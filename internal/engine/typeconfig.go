package engine

import (
	"errors"
	"fmt"

	"planbord/internal/domain"
	"planbord/internal/events"
	"planbord/internal/templates"
)

// UpdateTypeConfig replaces the display name and color of a project type.
// The key itself is fixed; there are exactly eight of them. Already-created
// projects are untouched, configs only shape future instantiations.
func (e Engine) UpdateTypeConfig(key string, name, color *string) (domain.ProjectTypeConfig, error) {
	cfg, err := e.Store.GetTypeConfig(key)
	if err != nil {
		return cfg, fmt.Errorf("project type %s: %w", key, err)
	}
	if name != nil {
		if *name == "" {
			return cfg, errors.New("name is required")
		}
		cfg.Name = *name
	}
	if color != nil {
		cfg.Color = *color
	}
	e.Store.PutTypeConfig(cfg)
	e.append("typeconfig.updated", "typeconfig", key, events.Payload{"name": cfg.Name})
	return cfg, nil
}

func (e Engine) AddTemplate(key string, tmpl domain.TaskTemplate) (domain.ProjectTypeConfig, error) {
	if tmpl.Title == "" {
		return domain.ProjectTypeConfig{}, errors.New("title is required")
	}
	if tmpl.ResourceType != "" && !domain.ValidResourceType(tmpl.ResourceType) {
		return domain.ProjectTypeConfig{}, fmt.Errorf("invalid resource type %q", tmpl.ResourceType)
	}
	for _, d := range tmpl.Dependencies {
		if d < 0 {
			return domain.ProjectTypeConfig{}, fmt.Errorf("invalid dependency index %d", d)
		}
	}
	return e.editTemplates(key, "template.added", func(list []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
		for _, d := range tmpl.Dependencies {
			if d >= len(list) {
				return nil, fmt.Errorf("dependency index %d out of range [0,%d)", d, len(list))
			}
		}
		return templates.Insert(list, tmpl), nil
	})
}

func (e Engine) RemoveTemplate(key string, index int) (domain.ProjectTypeConfig, error) {
	return e.editTemplates(key, "template.removed", func(list []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
		return templates.Remove(list, index)
	})
}

func (e Engine) ReorderTemplate(key string, from, to int) (domain.ProjectTypeConfig, error) {
	return e.editTemplates(key, "template.reordered", func(list []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
		return templates.Reorder(list, from, to)
	})
}

func (e Engine) AddTemplateDependency(key string, index, dep int) (domain.ProjectTypeConfig, error) {
	return e.editTemplates(key, "template.dependency.added", func(list []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
		return templates.AddDependency(list, index, dep)
	})
}

func (e Engine) RemoveTemplateDependency(key string, index, dep int) (domain.ProjectTypeConfig, error) {
	return e.editTemplates(key, "template.dependency.removed", func(list []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
		return templates.RemoveDependency(list, index, dep)
	})
}

func (e Engine) editTemplates(key, evtType string, edit func([]domain.TaskTemplate) ([]domain.TaskTemplate, error)) (domain.ProjectTypeConfig, error) {
	cfg, err := e.Store.GetTypeConfig(key)
	if err != nil {
		return cfg, fmt.Errorf("project type %s: %w", key, err)
	}
	list, err := edit(cfg.TaskTemplates)
	if err != nil {
		return cfg, err
	}
	cfg.TaskTemplates = list
	e.Store.PutTypeConfig(cfg)
	e.append(evtType, "typeconfig", key, events.Payload{"templates": len(list)})
	return cfg, nil
}
