package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"golang-jobs-scryper/internal/config"
	"golang-jobs-scryper/internal/entity"
	"golang-jobs-scryper/pkg/logger"
	"golang-jobs-scryper/pkg/utils"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

// searchResponse mirrors the careers search API envelope.
type searchResponse struct {
	OperationResult struct {
		Result struct {
			Jobs      []searchJob `json:"jobs"`
			TotalJobs int         `json:"totalJobs"`
		} `json:"result"`
	} `json:"operationResult"`
}

type searchJob struct {
	JobID       string          `json:"jobId"`
	Title       string          `json:"title"`
	PostingDate string          `json:"postingDate"`
	Properties  searchJobProps  `json:"properties"`
}

type searchJobProps struct {
	Description         string   `json:"description"`
	Locations           []string `json:"locations"`
	PrimaryLocation     string   `json:"primaryLocation"`
	WorkSiteFlexibility string   `json:"workSiteFlexibility"`
	Profession          string   `json:"profession"`
	Discipline          string   `json:"discipline"`
	RoleType            string   `json:"roleType"`
	EmploymentType      string   `json:"employmentType"`
}

// CareersClient fetches job listings from a careers-search API. Category,
// region and employment-type filtering is expressed as request parameters,
// not computed locally.
type CareersClient struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewCareersClient creates a careers API client paced to the configured
// request budget.
func NewCareersClient(cfg *config.Config, log *logger.Logger) *CareersClient {
	secondsPerRequest := time.Minute / time.Duration(cfg.Source.MaxRequestPerMinute)
	return &CareersClient{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Source.RequestTimeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// FetchPage fetches one page of listings (1-based).
func (c *CareersClient) FetchPage(ctx context.Context, page int) ([]entity.JobRecord, error) {
	if err := c.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(page), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %d: unexpected status %d", page, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}

	records := make([]entity.JobRecord, 0, len(sr.OperationResult.Result.Jobs))
	for _, job := range sr.OperationResult.Result.Jobs {
		records = append(records, c.toRecord(job))
	}
	return records, nil
}

func (c *CareersClient) searchURL(page int) string {
	q := url.Values{}
	q.Set("lc", c.cfg.Source.Location)
	for _, p := range c.cfg.Source.Professions {
		q.Add("p", p)
	}
	for _, d := range c.cfg.Source.Disciplines {
		q.Add("d", d)
	}
	for _, rt := range c.cfg.Source.RoleTypes {
		q.Add("rt", rt)
	}
	for _, et := range c.cfg.Source.EmploymentTypes {
		q.Add("et", et)
	}
	q.Set("l", c.cfg.Source.Locale)
	q.Set("pg", strconv.Itoa(page))
	q.Set("pgSz", strconv.Itoa(c.cfg.Source.PageSize))
	q.Set("o", "Recent")
	q.Set("flt", "true")
	return c.cfg.Source.BaseURL + "?" + q.Encode()
}

func (c *CareersClient) toRecord(job searchJob) entity.JobRecord {
	location := job.Properties.PrimaryLocation
	if location == "" {
		location = strings.Join(job.Properties.Locations, ", ")
	}

	return entity.JobRecord{
		ID:              job.JobID,
		Title:           job.Title,
		Location:        location,
		WorkFlexibility: job.Properties.WorkSiteFlexibility,
		Profession:      job.Properties.Profession,
		Discipline:      job.Properties.Discipline,
		RoleType:        job.Properties.RoleType,
		EmploymentType:  job.Properties.EmploymentType,
		Description:     StripHTML(job.Properties.Description, descriptionLimit),
		PostedAt:        utils.ParsePostingTime(job.PostingDate),
		ApplyURL:        c.applyURL(job.JobID),
	}
}

func (c *CareersClient) applyURL(jobID string) string {
	base := strings.TrimRight(c.cfg.Source.ApplyBaseURL, "/")
	if base == "" || jobID == "" {
		return base
	}
	return base + "/" + jobID
}
