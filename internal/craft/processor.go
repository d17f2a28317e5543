// Package craft resolves inspected items against the crafting reference
// data: base group lookup, affix matching and tier selection.
//
// Processor is the item-processing boundary. Every failure below it is
// turned into a Status, nothing escapes to the caller as an error or panic.
package craft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/craftassist/internal/config"
	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/ingest"
	"github.com/udisondev/craftassist/internal/metrics"
	"github.com/udisondev/craftassist/internal/model"
)

// Result is the outcome of processing one item.
// Item is nil when ingestion failed; otherwise it is populated as far as
// processing got.
type Result struct {
	Item   *model.Item
	Status Status
}

// Processor runs the resolution pipeline. It holds no per-item state and is
// safe for concurrent use.
type Processor struct {
	settings config.Crafting
	catalog  *data.Catalog
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewProcessor creates a processor over a loaded catalog.
// m may be nil; log defaults to slog.Default().
func NewProcessor(settings config.Crafting, catalog *data.Catalog, m *metrics.Metrics, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	if settings.BatchWorkers <= 0 {
		settings.BatchWorkers = 1
	}
	return &Processor{
		settings: settings,
		catalog:  catalog,
		metrics:  m,
		log:      log,
	}
}

// Process ingests e and resolves it.
func (p *Processor) Process(e ingest.Entity, types ingest.BaseItemTypes) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("processing entity panicked", "panic", r)
			res = Result{Status: internalError(ErrInternal, fmt.Sprintf("Internal error: %v", r))}
		}
		p.metrics.ObserveItem(res.Status.Code.String(), time.Since(start))
	}()

	item, err := ingest.ToItem(e, types)
	switch {
	case err == nil:
	case errors.Is(err, ingest.ErrNilEntity):
		return Result{Status: internalError(err, "Failed to get game data. Try again")}
	case errors.Is(err, ingest.ErrInvalidBaseItem):
		return Result{Status: craftingError(err, "Invalid base item type")}
	case errors.Is(err, ingest.ErrInvalidModsComponent):
		return Result{Status: craftingError(err, "Invalid mods component")}
	default:
		p.log.Error("ingesting entity", "error", err)
		return Result{Status: internalError(err, "Internal error: "+err.Error())}
	}

	return p.resolve(item)
}

// ProcessItem resolves an already ingested item, e.g. one reloaded from a
// store with fresh raw modifiers.
func (p *Processor) ProcessItem(item *model.Item) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("processing item panicked", "panic", r)
			res = Result{Item: item, Status: internalError(ErrInternal, fmt.Sprintf("Internal error: %v", r))}
		}
		p.metrics.ObserveItem(res.Status.Code.String(), time.Since(start))
	}()
	return p.resolve(item)
}

// ProcessBatch processes entities concurrently, at most BatchWorkers at a
// time. Results are returned in input order. The batch status is a Warning
// for an empty batch and an InternalError when ctx is cancelled before all
// entities were processed; unprocessed slots then hold zero Results.
func (p *Processor) ProcessBatch(ctx context.Context, entities []ingest.Entity, types ingest.BaseItemTypes) ([]Result, Status) {
	if len(entities) == 0 {
		return nil, warning(ErrNothingToProcess, "Nothing to process")
	}

	results := make([]Result, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.settings.BatchWorkers)

	for i, e := range entities {
		i, e := i, e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Process(e, types)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, internalError(err, "Batch cancelled: "+err.Error())
	}
	return results, success(fmt.Sprintf("Processed %d items", len(entities)))
}

func (p *Processor) resolve(item *model.Item) Result {
	if status := p.validate(item); !status.OK() {
		p.log.Debug(status.Message)
		return Result{Item: item, Status: status}
	}

	item.BaseGroup = ResolveBaseGroup(item, p.catalog)
	if item.BaseGroup == nil {
		p.log.Debug("no base group", "class", item.ClassName, "candidates", item.CandidateKeys())
		return Result{Item: item, Status: craftingError(ErrNoMatchingBaseGroup, "No matching base group found")}
	}

	item.Mods = p.resolveMods(item.RawMods, item.BaseGroup)

	p.log.Debug("item processed",
		"item", item.Name(),
		"base_group", item.BaseGroup.LookupKey(),
		"raw_mods", len(item.RawMods),
		"resolved_mods", len(item.Mods))
	return Result{Item: item, Status: success("Item processed successfully")}
}

func (p *Processor) validate(item *model.Item) Status {
	if item == nil {
		return internalError(ErrInternal, "Failed to get game data. Try again")
	}
	if item.Rarity == model.RarityUnique && !p.settings.UniqueItemsSupported {
		return craftingError(ErrUnsupportedRarity, "Unique items are not supported for crafting")
	}
	if !slices.Contains(p.settings.SupportedClasses, item.ClassName) {
		return craftingError(ErrUnsupportedItemClass,
			"This item is not supported for crafting: "+item.ClassName)
	}
	return success("Item is valid for crafting")
}

// resolveMods matches every raw modifier and selects its tier. Modifiers
// without a matching affix are dropped silently; modifiers with corrupt
// tier data are logged and skipped.
func (p *Processor) resolveMods(raw []model.Mod, group *data.BaseGroup) []model.DisplayMod {
	out := make([]model.DisplayMod, 0, len(raw))
	for _, mod := range raw {
		affix := MatchAffix(mod, group)
		if affix == nil {
			p.log.Debug("no affix for modifier", "name", mod.Name, "group", mod.Group)
			p.metrics.ModDropped(metrics.DropNoAffix)
			continue
		}

		tier, err := SelectTier(affix, mod.Values)
		if err != nil {
			p.log.Warn("skipping modifier", "name", mod.Name, "error", err)
			p.metrics.ModDropped(metrics.DropCorruptTier)
			continue
		}

		out = append(out, model.DisplayMod{
			AffixType:   mod.AffixType,
			Values:      append([]int(nil), mod.Values...),
			Description: affix.Description,
			Tier:        tier,
			Float:       tier.Float,
			Affix:       affix,
		})
		p.metrics.ModResolved()
	}
	return out
}
