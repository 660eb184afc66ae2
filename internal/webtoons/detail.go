package webtoons

import (
	"context"
	"strings"

	"github.com/brogergvhs/toond/internal/markup"
)

const episodeIDPrefix = "episode_"

// Detail fetches a title's list page. Each field is looked up on its own, so
// a missing block only blanks that field.
func (c *Client) Detail(ctx context.Context, listURL string) (*TitleDetail, error) {
	doc, err := c.document(ctx, listURL)
	if err != nil {
		return nil, wrap("detail", listURL, err)
	}

	d := parseDetail(doc, c.cfg.SchedulePrefix)
	c.log.Debugf("detail %q: %d episodes, %d recommendations\n", d.Title, len(d.Episodes), len(d.Recommendations))

	return d, nil
}

func parseDetail(doc markup.Node, schedulePrefix string) *TitleDetail {
	d := &TitleDetail{
		Title:       markup.Text(doc, ".detail_header .subj"),
		Genre:       markup.Text(doc, ".detail_header .genre"),
		Description: markup.Text(doc, ".summary"),
		Thumbnail:   markup.AttrOr(doc, ".detail_header .thmb img", "src", ""),
		AgeRating:   markup.Text(doc, ".age_text"),
		Stats:       parseStats(doc),
	}

	if style, ok := markup.Attr(doc, ".detail_bg", "style"); ok {
		if u, ok := markup.BackgroundURL(style); ok {
			d.BackgroundImage = &u
		}
	}

	schedule := markup.Text(doc, ".day_info")
	if schedulePrefix != "" {
		schedule = strings.TrimSpace(strings.TrimPrefix(schedule, schedulePrefix))
	}
	d.UpdateSchedule = schedule

	creators := doc.Select(".ly_creator_in .title")
	d.Authors = deriveAuthors(
		markup.Text(markup.First(creators), ""),
		markup.Text(markup.Last(creators), ""),
	)

	d.Episodes = parseEpisodes(doc)
	d.Recommendations = parseRecommendations(doc)

	return d
}

// parseStats reads views from the first item and subscribers from the last;
// a single item feeds both.
func parseStats(doc markup.Node) Stats {
	items := doc.Select(".grade_area li")

	return Stats{
		Views:       markup.Text(markup.First(items), ".cnt"),
		Subscribers: markup.Text(markup.Last(items), ".cnt"),
	}
}

func deriveAuthors(writer, illustrator string) []Author {
	switch {
	case writer != "" && illustrator != "" && writer != illustrator:
		return []Author{
			{Role: RoleWriter, Name: writer},
			{Role: RoleIllustrator, Name: illustrator},
		}
	case writer != "":
		return []Author{{Role: RoleCreator, Name: writer}}
	case illustrator != "":
		return []Author{{Role: RoleCreator, Name: illustrator}}
	default:
		return []Author{}
	}
}

// parseEpisodes keeps every item, even ones without a title.
func parseEpisodes(doc markup.Node) []Episode {
	items := doc.Select("#_listUl ._episodeItem")
	out := make([]Episode, 0, len(items))

	for _, li := range items {
		likes := markup.Text(li, ".like_area")
		likes = strings.TrimSpace(strings.Replace(likes, "like", "", 1))

		out = append(out, Episode{
			EpisodeID:     strings.TrimPrefix(markup.AttrOr(li, "", "id", ""), episodeIDPrefix),
			Title:         markup.Text(li, ".subj span"),
			Date:          markup.Text(li, ".date"),
			Likes:         likes,
			Thumbnail:     markup.AttrOr(li, ".thmb img", "src", ""),
			Link:          markup.AttrOr(li, "a", "href", ""),
			DisplayNumber: markup.Text(li, ".tx"),
		})
	}

	return out
}

func parseRecommendations(doc markup.Node) []RecommendationEntry {
	items := doc.Select(".detail_other .lst_type1 li")
	out := make([]RecommendationEntry, 0, len(items))

	for _, li := range items {
		out = append(out, RecommendationEntry{
			Title:     markup.Text(li, ".subj"),
			Author:    markup.Text(li, ".author"),
			Views:     markup.Text(li, ".grade_num"),
			Thumbnail: markup.AttrOr(li, ".pic_area img", "src", ""),
			Link:      markup.AttrOr(li, "a", "href", ""),
		})
	}

	return out
}
