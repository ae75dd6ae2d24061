package learn

import (
	"strings"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/content"
)

// FilterTopics returns the topics whose difficulty is in selected, in
// catalog order. An empty selection returns every topic.
func FilterTopics(topics []catalog.Topic, selected []content.Difficulty) []catalog.Topic {
	if len(selected) == 0 {
		return topics
	}
	want := make(map[content.Difficulty]bool, len(selected))
	for _, d := range selected {
		want[d] = true
	}
	var out []catalog.Topic
	for _, t := range topics {
		if want[t.Difficulty] {
			out = append(out, t)
		}
	}
	return out
}

// IsDone reports whether a topic counts as completed. Completions are
// recorded under the generated lesson title, so the check is a loose
// case-sensitive substring match of the topic title against each
// completed title.
func IsDone(topicTitle string, completed []string) bool {
	for _, c := range completed {
		if strings.Contains(c, topicTitle) {
			return true
		}
	}
	return false
}

// Topics applies the controller's current filter to topics.
func (c *Controller) Topics(topics []catalog.Topic) []catalog.Topic {
	return FilterTopics(topics, c.Filters())
}
