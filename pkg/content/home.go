package content

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// LoadHome 并发获取 hero 与 contents 两个文档
//
// 任一文档失败都会返回错误；两个都失败时错误被合并（multierr.Errors 可拆分）。
func LoadHome(ctx context.Context, src Source) (*Home, error) {
	var (
		wg          sync.WaitGroup
		hero        *Hero
		sections    []Section
		errHero     error
		errSections error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		hero, errHero = src.Hero(ctx)
	}()
	go func() {
		defer wg.Done()
		sections, errSections = src.Sections(ctx)
	}()
	wg.Wait()

	if err := multierr.Combine(errHero, errSections); err != nil {
		return nil, err
	}
	return &Home{Hero: hero, Sections: sections}, nil
}

// Problem 内容检查发现的问题
type Problem struct {
	Section string // 轨道 id 或标题，空表示文档级问题
	Card    string // 卡片 id，空表示轨道级问题
	Message string
}

func (p Problem) String() string {
	switch {
	case p.Section == "":
		return p.Message
	case p.Card == "":
		return fmt.Sprintf("section %s: %s", p.Section, p.Message)
	default:
		return fmt.Sprintf("section %s, card %s: %s", p.Section, p.Card, p.Message)
	}
}

// Validate 检查首页内容中会导致轨道无法渲染或显示异常的问题
func Validate(home *Home) []Problem {
	var problems []Problem
	if home == nil {
		return []Problem{{Message: "no content"}}
	}
	if home.Hero == nil || home.Hero.Title == "" {
		problems = append(problems, Problem{Message: "hero has no title"})
	}
	if len(home.Sections) == 0 {
		problems = append(problems, Problem{Message: "no sections"})
	}

	sectionIDs := make(map[Text]bool)
	for i, s := range home.Sections {
		name := string(s.ID)
		if name == "" {
			name = s.Title
		}
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}

		if s.ID == "" && s.Title == "" {
			problems = append(problems, Problem{Section: name, Message: "missing id and title"})
		}
		if s.ID != "" {
			if sectionIDs[s.ID] {
				problems = append(problems, Problem{Section: name, Message: "duplicate section id"})
			}
			sectionIDs[s.ID] = true
		}
		if s.SliderOptions.Visible < 0 || s.SliderOptions.Step < 0 {
			problems = append(problems, Problem{Section: name, Message: "negative slider options"})
		}
		if len(s.Contents) == 0 {
			problems = append(problems, Problem{Section: name, Message: "no contents, rail will not render"})
		}

		cardIDs := make(map[Text]bool)
		for _, c := range s.Contents {
			if c.ID == "" {
				problems = append(problems, Problem{Section: name, Card: c.Title, Message: "missing card id"})
				continue
			}
			if cardIDs[c.ID] {
				problems = append(problems, Problem{Section: name, Card: string(c.ID), Message: "duplicate card id"})
			}
			cardIDs[c.ID] = true
			if c.Title == "" {
				problems = append(problems, Problem{Section: name, Card: string(c.ID), Message: "missing title"})
			}
			if c.Image == "" {
				problems = append(problems, Problem{Section: name, Card: string(c.ID), Message: "missing image"})
			}
		}
	}
	return problems
}
