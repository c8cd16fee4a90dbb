package validation

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

const tagName = "validate"

// TagProvider contributes validators from the `validate` struct tag.
//
// The tag is a comma separated list of rules, each optionally carrying a
// parameter after "=":
//
//	Name  string `validate:"required,min=2,max=64"`
//	Plan  string `validate:"oneof=free pro team"`
//	Email string `validate:"required,email"`
//
// Validators are contributed in tag order. Rules other than required skip
// nil pointers, so optional fields should be pointers.
type TagProvider struct {
	rules map[string]rule
}

// TagOption configures a TagProvider.
type TagOption func(*TagProvider)

// WithRule registers a custom rule, replacing a built-in one with the same name.
func WithRule(name string, check RuleCheck, message string) TagOption {
	return func(p *TagProvider) {
		p.rules[name] = rule{
			check: check,
			fail:  simpleError(message, "validation."+name),
		}
	}
}

// NewTagProvider creates a provider with the built-in rules.
func NewTagProvider(opts ...TagOption) *TagProvider {
	p := &TagProvider{rules: builtinRules()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns the names of the registered rules.
func (p *TagProvider) Rules() []string {
	return slices.Sorted(maps.Keys(p.rules))
}

func (p *TagProvider) GetValidators(pctx *ProviderContext) {
	tag, ok := pctx.Metadata.Tag.Lookup(tagName)
	if !ok || tag == "" || tag == "-" {
		return
	}

	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, param, _ := strings.Cut(part, "=")
		r, ok := p.rules[name]
		if !ok {
			pctx.Add(unknownRule(name))
			continue
		}
		pctx.Add(&ruleValidator{name: name, param: param, rule: r})
	}
}

// ruleValidator runs one parsed tag rule.
type ruleValidator struct {
	name  string
	param string
	rule  rule
}

func (r *ruleValidator) Validate(_ context.Context, vctx *ValidationContext) error {
	v := indirect(vctx.Value)
	if !v.IsValid() && !r.rule.runOnNil {
		return nil
	}

	ok, err := r.rule.check(v, r.param)
	if err != nil {
		return fmt.Errorf("rule %q on %s: %w", r.name, vctx.Field, err)
	}
	if ok {
		return nil
	}
	return ValidationErrors{r.rule.fail(vctx.Field, r.param, v)}
}

func unknownRule(name string) Validator {
	return ValidatorFunc(func(_ context.Context, vctx *ValidationContext) error {
		return fmt.Errorf("%w: %q on %s", ErrUnknownRule, name, vctx.Field)
	})
}

// indirect follows pointers and interfaces; the result is invalid for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
