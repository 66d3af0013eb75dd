package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gameforum/internal/models"
	"gameforum/internal/services"
	"gameforum/internal/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
)

const (
	sitemapTopicLimit = 500
	feedTopicLimit    = 20
	feedExcerptBlocks = 3
)

// SEOHandler serves robots.txt, the sitemap and the RSS feed.
type SEOHandler struct {
	forum   *services.ForumService
	siteURL string
	clock   func() time.Time
}

func NewSEOHandler(forum *services.ForumService, siteURL string) *SEOHandler {
	return &SEOHandler{forum: forum, siteURL: strings.TrimRight(siteURL, "/"), clock: time.Now}
}

// RobotsTxt 返回 robots.txt
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# 禁止爬取 API 端点
Disallow: /api/

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML 动态生成 sitemap.xml
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	now := h.clock()
	today := now.Format("2006-01-02")

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: h.siteURL + "/", LastMod: today, ChangeFreq: "daily", Priority: "1.0"})
	for _, cat := range models.Categories() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/category/%s", h.siteURL, cat),
			LastMod:    today,
			ChangeFreq: "daily",
			Priority:   "0.7",
		})
	}

	topics := h.forum.GetTopics(services.TopicQuery{SortBy: models.SortNewest})
	if len(topics) > sitemapTopicLimit {
		topics = topics[:sitemapTopicLimit]
	}
	for _, t := range topics {
		lastMod := t.CreatedAt
		if t.UpdatedAt != nil {
			lastMod = *t.UpdatedAt
		}
		// 根据帖子新旧程度调整优先级
		priority, changeFreq := "0.6", "weekly"
		if days := now.Sub(t.CreatedAt).Hours() / 24; days < 7 {
			priority, changeFreq = "0.8", "daily"
		} else if days < 30 {
			priority = "0.7"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/topic/%s", h.siteURL, t.ID),
			LastMod:    lastMod.Format("2006-01-02"),
			ChangeFreq: changeFreq,
			Priority:   priority,
		})
	}

	writeXML(c, "application/xml; charset=utf-8", set)
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author"`
	Category    string `xml:"category"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RSSFeed 生成 RSS 2.0 feed of the newest topics.
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	topics := h.forum.GetTopics(services.TopicQuery{SortBy: models.SortNewest})
	if len(topics) > feedTopicLimit {
		topics = topics[:feedTopicLimit]
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         "GameForum",
			Link:          h.siteURL,
			Description:   "Games, the industry and everything in between",
			LastBuildDate: h.clock().Format(time.RFC1123Z),
		},
	}
	for _, t := range topics {
		link := fmt.Sprintf("%s/topic/%s", h.siteURL, t.ID)
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       t.Title,
			Link:        link,
			Description: leadingBlocks(string(utils.RenderMarkdown(t.Content)), feedExcerptBlocks),
			Author:      t.Username,
			Category:    string(t.Category),
			PubDate:     t.CreatedAt.Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	writeXML(c, "application/rss+xml; charset=utf-8", feed)
}

// leadingBlocks keeps the first n top-level elements of an HTML fragment.
func leadingBlocks(fragment string, n int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var sb strings.Builder
	doc.Find("body").Children().Slice(0, min(n, doc.Find("body").Children().Length())).Each(func(_ int, s *goquery.Selection) {
		if html, err := goquery.OuterHtml(s); err == nil {
			sb.WriteString(html)
		}
	})
	return sb.String()
}

func writeXML(c *gin.Context, contentType string, v any) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		RenderError(c, models.NewInternalError(err))
		return
	}
	c.Data(http.StatusOK, contentType, append([]byte(xml.Header), out...))
}
