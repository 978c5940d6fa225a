// Package templates edits task template lists for a project type. Template
// dependencies are positional indices into the same list, so every
// structural edit has to remap them in the same step.
package templates

import (
	"fmt"

	"planbord/internal/domain"
)

// Insert appends the template to the end of the list. Appending never
// shifts existing positions, so no remap is needed.
func Insert(list []domain.TaskTemplate, t domain.TaskTemplate) []domain.TaskTemplate {
	out := cloneList(list)
	return append(out, cloneTemplate(t))
}

// Remove deletes the template at index i. Dependencies on i are dropped,
// dependencies past i shift down by one.
func Remove(list []domain.TaskTemplate, i int) ([]domain.TaskTemplate, error) {
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("template index %d out of range [0,%d)", i, len(list))
	}
	out := make([]domain.TaskTemplate, 0, len(list)-1)
	for j, t := range list {
		if j == i {
			continue
		}
		ct := cloneTemplate(t)
		ct.Dependencies = remapDeps(ct.Dependencies, func(d int) (int, bool) {
			switch {
			case d == i:
				return 0, false
			case d > i:
				return d - 1, true
			default:
				return d, true
			}
		})
		out = append(out, ct)
	}
	return out, nil
}

// Reorder moves the template at from to position to. Every dependency in
// the list is remapped so it keeps pointing at the same template.
func Reorder(list []domain.TaskTemplate, from, to int) ([]domain.TaskTemplate, error) {
	if from < 0 || from >= len(list) {
		return nil, fmt.Errorf("template index %d out of range [0,%d)", from, len(list))
	}
	if to < 0 || to >= len(list) {
		return nil, fmt.Errorf("template index %d out of range [0,%d)", to, len(list))
	}
	out := cloneList(list)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]domain.TaskTemplate{moved}, out[to:]...)...)
	for i := range out {
		out[i].Dependencies = remapDeps(out[i].Dependencies, func(d int) (int, bool) {
			switch {
			case d == from:
				return to, true
			case from < d && d <= to:
				return d - 1, true
			case to <= d && d < from:
				return d + 1, true
			default:
				return d, true
			}
		})
	}
	return out, nil
}

// AddDependency records that template at index depends on the template at
// dep. Self references and duplicates are rejected; anything else,
// transitive cycles included, is the planner's call.
func AddDependency(list []domain.TaskTemplate, index, dep int) ([]domain.TaskTemplate, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("template index %d out of range [0,%d)", index, len(list))
	}
	if dep < 0 || dep >= len(list) {
		return nil, fmt.Errorf("dependency index %d out of range [0,%d)", dep, len(list))
	}
	if index == dep {
		return nil, fmt.Errorf("template %d cannot depend on itself", index)
	}
	for _, d := range list[index].Dependencies {
		if d == dep {
			return nil, fmt.Errorf("template %d already depends on %d", index, dep)
		}
	}
	out := cloneList(list)
	out[index].Dependencies = append(out[index].Dependencies, dep)
	return out, nil
}

// RemoveDependency drops dep from the dependency list of the template at
// index. Removing a dependency that is not there is a no-op.
func RemoveDependency(list []domain.TaskTemplate, index, dep int) ([]domain.TaskTemplate, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("template index %d out of range [0,%d)", index, len(list))
	}
	out := cloneList(list)
	out[index].Dependencies = remapDeps(out[index].Dependencies, func(d int) (int, bool) {
		return d, d != dep
	})
	return out, nil
}

// remapDeps maps every dependency through f, dropping those for which f
// reports false.
func remapDeps(deps []int, f func(int) (int, bool)) []int {
	var out []int
	for _, d := range deps {
		if nd, keep := f(d); keep {
			out = append(out, nd)
		}
	}
	return out
}

func cloneTemplate(t domain.TaskTemplate) domain.TaskTemplate {
	ct := t
	if t.Duration != nil {
		d := *t.Duration
		ct.Duration = &d
	}
	ct.Dependencies = append([]int(nil), t.Dependencies...)
	return ct
}

func cloneList(list []domain.TaskTemplate) []domain.TaskTemplate {
	out := make([]domain.TaskTemplate, 0, len(list))
	for _, t := range list {
		out = append(out, cloneTemplate(t))
	}
	return out
}
