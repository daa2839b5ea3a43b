// Package importer содержит импорт заданий из HTML-страниц расписаний.
package importer

import (
	"bytes"
	"fmt"
	"net/http"

	"focusboard/internal/config"
	"focusboard/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Importer загружает и разбирает HTML-страницы с таблицей заданий
type Importer struct {
	importerConfig config.ImporterConfig
	retryConfig    config.RetryConfig
	logger         *zap.Logger
}

// New создает новый импортер
func New(cfg *config.Config, logger *zap.Logger) *Importer {
	return &Importer{
		importerConfig: cfg.ImporterConfig,
		retryConfig:    cfg.RetryConfig,
		logger:         logger,
	}
}

// ImportFromURL загружает страницу и извлекает задания для пользователя.
// Страница без распознаваемой таблицы заданий дает ошибку, а не пустой результат.
func (i *Importer) ImportFromURL(url string, userID int64) ([]model.Assignment, error) {
	collector := i.newCollector()

	var assignments []model.Assignment
	var parseErr error

	collector.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			parseErr = fmt.Errorf("failed to parse HTML: %w", err)
			return
		}

		assignments, parseErr = ParseTimetable(doc, userID)
	})

	collector.OnError(func(r *colly.Response, err error) {
		maxRetries := i.retryConfig.MaxRetries
		retries := r.Request.Ctx.GetAny("retries")
		retryCount, ok := retries.(int)
		if !ok {
			retryCount = 0
		}

		if retryCount < maxRetries {
			retryCount++
			r.Request.Ctx.Put("retries", retryCount)
			i.logger.Warn("Retrying import request",
				zap.String("url", r.Request.URL.String()),
				zap.Int("retry", retryCount),
				zap.Error(err))
			if err := r.Request.Retry(); err != nil {
				i.logger.Error("Failed to retry import request",
					zap.String("url", r.Request.URL.String()),
					zap.Error(err))
			}
			return
		}

		parseErr = fmt.Errorf("failed to fetch %s after %d retries: %w", r.Request.URL, retryCount, err)
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", url, err)
	}
	collector.Wait()

	if parseErr != nil {
		return nil, parseErr
	}

	i.logger.Info("Timetable imported",
		zap.String("url", url),
		zap.Int64("user_id", userID),
		zap.Int("assignments", len(assignments)))

	return assignments, nil
}

// newCollector создает настроенный Colly collector
func (i *Importer) newCollector() *colly.Collector {
	collector := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		colly.MaxDepth(1),
		colly.MaxBodySize(i.importerConfig.MaxBodySize),
	)

	collector.WithTransport(&http.Transport{
		ResponseHeaderTimeout: i.importerConfig.ResponseHeaderTimeout,
		DisableKeepAlives:     true,
	})

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob: "*",
		Delay:      i.importerConfig.RequestDelay,
	}); err != nil {
		i.logger.Error("Failed to set collector limit", zap.Error(err))
	}

	return collector
}
