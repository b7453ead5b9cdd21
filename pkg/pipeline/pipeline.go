// Package pipeline drives a document through parsing and rendering.
//
// A Pipeline moves forward through three stages and never back:
//
//	StageInit --Parse--> StageParsed --Transform--> StageTransformed
//
// Every operation checks the current stage and fails with a *ContractError
// when called out of order.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/parkdown/internal/logging"
	"github.com/yaklabco/parkdown/pkg/fsutil"
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/ptree"
)

// Stage is the position of a Pipeline in its lifecycle.
type Stage uint8

const (
	// StageInit holds content that has not been parsed.
	StageInit Stage = iota

	// StageParsed holds a successful parse tree.
	StageParsed

	// StageTransformed holds rendered output as well.
	StageTransformed
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageParsed:
		return "parsed"
	case StageTransformed:
		return "transformed"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// ErrWrongStage is wrapped by every ContractError.
var ErrWrongStage = errors.New("operation not valid in current stage")

// ErrNilRenderer is returned by Transform when no renderer is given.
var ErrNilRenderer = errors.New("nil renderer")

// ContractError reports an operation attempted in the wrong stage.
type ContractError struct {
	Op   string
	Have Stage
	Want Stage
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("pipeline: %s requires stage %s, have %s", e.Op, e.Want, e.Have)
}

func (e *ContractError) Unwrap() error {
	return ErrWrongStage
}

// Renderer turns a parsed root node into output text.
type Renderer interface {
	Render(ctx context.Context, root ptree.Node) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, root ptree.Node) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, root ptree.Node) (string, error) {
	return f(ctx, root)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRule selects the start rule. The default is grammar.RuleFile.
func WithRule(rule grammar.Rule) Option {
	return func(p *Pipeline) {
		p.rule = rule
	}
}

// WithPath records where the content came from.
func WithPath(path string) Option {
	return func(p *Pipeline) {
		p.path = path
	}
}

// WithMaxDepth bounds grammar rule nesting.
func WithMaxDepth(depth int) Option {
	return func(p *Pipeline) {
		p.maxDepth = depth
	}
}

// Pipeline holds one document and what has been derived from it so far.
type Pipeline struct {
	content  string
	path     string
	rule     grammar.Rule
	maxDepth int

	stage  Stage
	tree   *ptree.Tree
	root   ptree.Node
	output string
}

// New creates a pipeline in StageInit.
func New(content string, opts ...Option) *Pipeline {
	p := &Pipeline{
		content: content,
		rule:    grammar.RuleFile,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// FromFile reads path and creates a pipeline for its content.
func FromFile(ctx context.Context, path string, opts ...Option) (*Pipeline, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	return New(content, append([]Option{WithPath(path)}, opts...)...), nil
}

// Stage returns the current stage.
func (p *Pipeline) Stage() Stage { return p.stage }

// Content returns the input text.
func (p *Pipeline) Content() string { return p.content }

// Path returns the input path, or "" for in-memory content.
func (p *Pipeline) Path() string { return p.path }

// Rule returns the start rule.
func (p *Pipeline) Rule() grammar.Rule { return p.rule }

func (p *Pipeline) require(op string, want Stage) error {
	if p.stage != want {
		return &ContractError{Op: op, Have: p.stage, Want: want}
	}

	return nil
}

func (p *Pipeline) requireParsed(op string) error {
	if p.stage < StageParsed {
		return &ContractError{Op: op, Have: p.stage, Want: StageParsed}
	}

	return nil
}

// Parse runs the grammar and builds the tree. On failure the pipeline stays
// in StageInit and the grammar or structural error is returned.
func (p *Pipeline) Parse(ctx context.Context) error {
	if err := p.require("Parse", StageInit); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	logger := logging.FromContext(ctx)
	logger.Debug("parsing",
		logging.FieldPath, p.path,
		logging.FieldRule, p.rule,
		logging.FieldBytes, len(p.content))

	var opts []grammar.Option
	if p.maxDepth > 0 {
		opts = append(opts, grammar.WithMaxDepth(p.maxDepth))
	}

	res, err := grammar.Parse(p.rule, p.content, opts...)
	if err != nil {
		return err
	}

	tree := ptree.New(res).WithPath(p.path)

	root, err := tree.Root()
	if err != nil {
		return err
	}

	p.tree, p.root = tree, root
	p.stage = StageParsed

	logger.Debug("parsed",
		logging.FieldPath, p.path,
		logging.FieldNodes, tree.Len(),
		logging.FieldStage, p.stage)

	return nil
}

// Root returns the root node. Valid from StageParsed.
func (p *Pipeline) Root() (ptree.Node, error) {
	if err := p.requireParsed("Root"); err != nil {
		return ptree.Node{}, err
	}

	return p.root, nil
}

// Tree returns the parse tree. Valid from StageParsed.
func (p *Pipeline) Tree() (*ptree.Tree, error) {
	if err := p.requireParsed("Tree"); err != nil {
		return nil, err
	}

	return p.tree, nil
}

// Tokens returns the lossless segment view of the root. Valid from
// StageParsed.
func (p *Pipeline) Tokens() ([]ptree.Segment, error) {
	if err := p.requireParsed("Tokens"); err != nil {
		return nil, err
	}

	return ptree.Segments(p.root), nil
}

// Transform renders the root with r and moves to StageTransformed. On
// failure the pipeline stays in StageParsed.
func (p *Pipeline) Transform(ctx context.Context, r Renderer) error {
	if err := p.require("Transform", StageParsed); err != nil {
		return err
	}

	if r == nil {
		return ErrNilRenderer
	}

	output, err := r.Render(ctx, p.root)
	if err != nil {
		return fmt.Errorf("transform %s: %w", p.displayPath(), err)
	}

	p.output = output
	p.stage = StageTransformed

	logging.FromContext(ctx).Debug("transformed",
		logging.FieldPath, p.path,
		logging.FieldBytes, len(output),
		logging.FieldStage, p.stage)

	return nil
}

// Output returns the rendered text. Valid only in StageTransformed.
func (p *Pipeline) Output() (string, error) {
	if err := p.require("Output", StageTransformed); err != nil {
		return "", err
	}

	return p.output, nil
}

func (p *Pipeline) displayPath() string {
	if p.path == "" {
		return "<input>"
	}

	return p.path
}
