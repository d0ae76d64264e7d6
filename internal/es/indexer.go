package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/matheusvf/loja-backend/internal/models"
)

// Indexer mirrors catalog writes into the search index, best-effort.
type Indexer struct {
	Client *elasticsearch.Client
	Index  string
}

func (i *Indexer) IndexProduct(ctx context.Context, p *models.Product) error {
	if i == nil || i.Client == nil {
		return nil
	}

	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("es: json.Marshal failed: %w", err)
	}

	res, err := i.Client.Index(
		i.Index,
		bytes.NewReader(data),
		i.Client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		i.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: index failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return errResponse(res.Status())
	}
	return nil
}

func (i *Indexer) DeleteProduct(ctx context.Context, id uint) error {
	if i == nil || i.Client == nil {
		return nil
	}

	res, err := i.Client.Delete(
		i.Index,
		strconv.FormatUint(uint64(id), 10),
		i.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return errResponse(res.Status())
	}
	return nil
}
