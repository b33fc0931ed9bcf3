package catalog_test

import (
	"context"
	"io"
	"strings"

	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func staticSource(body string) catalog.Source {
	return catalog.SourceFunc(func(context.Context) ([]model.Event, error) {
		return catalog.Decode(strings.NewReader(body))
	})
}
