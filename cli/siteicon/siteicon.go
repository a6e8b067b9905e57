//
// Copyright (c) 2026 The webwrap Authors
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package siteicon finds and downloads the icon a web site advertises for
// itself.
package siteicon

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/webwrap/webwrap/version"
)

const maxBodySize = 4 << 20

// Candidate is an icon link found on a page.
type Candidate struct {
	URL  string
	Rel  string
	Type string
	// Size is the largest dimension from the sizes attribute, 0 if unknown.
	Size int
}

// Discover fetches pageURL and returns the icon candidates it links to,
// best first. The site-wide /favicon.ico is not considered: it is
// usually in a format the image package can't decode.
func Discover(ctx context.Context, client *http.Client, pageURL string) ([]Candidate, error) {
	body, base, err := get(ctx, client, pageURL)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, errors.Annotatef(err, "parsing %s", pageURL)
	}
	return candidatesFromDoc(doc, base), nil
}

func candidatesFromDoc(doc *goquery.Document, base *url.URL) []Candidate {
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if bu, err := base.Parse(href); err == nil {
			base = bu
		}
	}

	var res []Candidate
	doc.Find("link[rel][href]").Each(func(_ int, s *goquery.Selection) {
		rel := strings.ToLower(strings.TrimSpace(s.AttrOr("rel", "")))
		if !isIconRel(rel) {
			return
		}
		href := strings.TrimSpace(s.AttrOr("href", ""))
		u, err := base.Parse(href)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		res = append(res, Candidate{
			URL:  u.String(),
			Rel:  rel,
			Type: strings.ToLower(s.AttrOr("type", "")),
			Size: parseSizes(s.AttrOr("sizes", "")),
		})
	})

	sort.SliceStable(res, func(i, j int) bool {
		return score(res[i]) > score(res[j])
	})
	return res
}

func isIconRel(rel string) bool {
	for _, f := range strings.Fields(rel) {
		switch f {
		case "icon", "apple-touch-icon", "apple-touch-icon-precomposed":
			return true
		}
	}
	return false
}

// parseSizes returns the largest dimension in a sizes attribute such as
// "16x16 32x32". "any" counts as large.
func parseSizes(s string) int {
	best := 0
	for _, f := range strings.Fields(strings.ToLower(s)) {
		if f == "any" {
			return 1024
		}
		parts := strings.SplitN(f, "x", 2)
		if len(parts) != 2 {
			continue
		}
		w, err1 := strconv.Atoi(parts[0])
		h, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}
		if w > best {
			best = w
		}
		if h > best {
			best = h
		}
	}
	return best
}

func score(c Candidate) int {
	s := c.Size
	switch {
	case c.Type == "image/png" || strings.HasSuffix(strings.ToLower(c.URL), ".png"):
		s += 10000
	case c.Type == "image/svg+xml" || strings.HasSuffix(strings.ToLower(c.URL), ".svg"),
		c.Type == "image/x-icon" || c.Type == "image/vnd.microsoft.icon" || strings.HasSuffix(strings.ToLower(c.URL), ".ico"):
		// Not decodable.
		s -= 100000
	}
	if strings.Contains(c.Rel, "apple-touch-icon") && c.Size == 0 {
		// Apple touch icons are 180x180 unless stated otherwise.
		s += 180
	}
	return s
}

// Fetch downloads and decodes the icon at iconURL.
func Fetch(ctx context.Context, client *http.Client, iconURL string) (image.Image, error) {
	body, _, err := get(ctx, client, iconURL)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer body.Close()

	img, format, err := image.Decode(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, errors.Annotatef(err, "decoding %s", iconURL)
	}
	glog.V(1).Infof("fetched %s icon %s (%v)", format, iconURL, img.Bounds().Size())
	return img, nil
}

// Find returns the first candidate icon of pageURL that can be downloaded
// and decoded.
func Find(ctx context.Context, client *http.Client, pageURL string) (image.Image, string, error) {
	cands, err := Discover(ctx, client, pageURL)
	if err != nil {
		return nil, "", errors.Trace(err)
	}
	for _, c := range cands {
		if score(c) < 0 {
			continue
		}
		img, err := Fetch(ctx, client, c.URL)
		if err != nil {
			glog.Infof("skipping icon %s: %v", c.URL, err)
			continue
		}
		return img, c.URL, nil
	}
	return nil, "", errors.NotFoundf("usable icon on %s", pageURL)
}

func get(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, *url.URL, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, errors.Errorf("GET %s: %s", rawURL, resp.Status)
	}
	return resp.Body, resp.Request.URL, nil
}
