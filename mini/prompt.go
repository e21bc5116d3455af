package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
)

// bind is a fixed menu entry shown after the selectable items.
type bind struct {
	name string
}

func (b *bind) String() string {
	return b.name
}

func newBind(name string) *bind {
	return &bind{name: name}
}

var (
	next    = newBind("Next frame")
	prev    = newBind("Previous frame")
	jump    = newBind("Jump to election")
	play    = newBind("Play to the end")
	article = newBind("Show article")
	openMap = newBind("Open frame")
	browse  = newBind("Open in browser")
	back    = newBind("Back")
	search  = newBind("Search again")
	quit    = newBind("Quit")
)

// menu asks to pick one of items or one of binds. Exactly one of the results is set.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	binds = append(binds, quit)

	options := make([]string, 0, len(items)+len(binds))
	for i, item := range items {
		options = append(options, fmt.Sprintf("%d. %s", i+1, truncate.StringWithTail(item.String(), uint(util.Max(truncateAt-8, 10)), "…")))
	}
	for _, b := range binds {
		options = append(options, style.Fg(color.Yellow)(b.name))
	}

	var (
		zero   T
		answer int
	)

	err := survey.AskOne(&survey.Select{
		Message:  "",
		Options:  options,
		PageSize: util.Max(10, len(binds)+3),
	}, &answer)
	if err != nil {
		return nil, zero, err
	}

	if answer < len(items) {
		return nil, items[answer], nil
	}

	return binds[answer-len(items)], zero, nil
}

type input struct {
	value string
}

// getInput asks for a line until validate accepts it. Tab completes with suggest when it is set.
func getInput(validate func(string) bool, suggest func(string) []string) (*input, error) {
	var answer string

	prompt := &survey.Input{Message: ">", Suggest: suggest}
	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(ans any) error {
		if s, ok := ans.(string); ok && validate(s) {
			return nil
		}
		return errors.New("invalid input")
	}))
	if err != nil {
		return nil, err
	}

	return &input{value: answer}, nil
}

func title(t string) {
	fmt.Println(style.Fg(color.Purple)(style.Bold(t)))
}

func fail(t string) {
	fmt.Println(style.Fg(color.Red)(icon.Get(icon.Fail) + " " + t))
}

func progress(msg string) (eraser func()) {
	return util.PrintErasable(icon.Get(icon.Progress) + " " + style.Faint(msg))
}

// say prints a line trimmed to the terminal width.
func say(line string) {
	fmt.Println(truncate.StringWithTail(line, uint(lo.Max([]int{truncateAt, 10})), "…"))
}
