package server

import (
	"context"
	"strconv"

	"stock-and-swipe/server/logging"
	gameplaylog "stock-and-swipe/server/logging/gameplay"
)

// spawnItem introduces a new item at a non-colliding floor position with a
// uniformly random catalog type and target shelf. IDs are monotonic and never
// reused within a session.
func (w *World) spawnItem() *Item {
	w.nextItemID++
	item := &Item{
		ID:          w.nextItemID,
		Type:        w.cfg.Catalog[w.randomIndex(len(w.cfg.Catalog))].Name,
		Position:    w.findNonCollidingPosition(w.cfg.SpawnBound),
		TargetShelf: w.randomIndex(len(w.cfg.ShelfAnchors)),
	}
	w.items = append(w.items, item)
	gameplaylog.ItemSpawned(context.Background(), w.publisher, w.tick, itemRef(item), gameplaylog.ItemPayload{
		ItemType: item.Type,
		X:        item.Position.X,
		Z:        item.Position.Z,
	})
	return item
}

// itemByID returns the live item with the given id, or nil.
func (w *World) itemByID(id int64) *Item {
	for _, item := range w.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// removeItem drops the item with the given id from the live list. Removing
// an absent id is a no-op.
func (w *World) removeItem(id int64) {
	for i, item := range w.items {
		if item.ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return
		}
	}
}

// placeOnShelf rests item on its target shelf anchor, scores the placement,
// and enqueues the transient effect. The caller has already released any held
// reference to the item.
func (w *World) placeOnShelf(item *Item) {
	anchor := w.cfg.ShelfAnchors[item.TargetShelf]
	item.Position = Vec3{X: anchor.X, Y: shelfRestHeight, Z: anchor.Z}
	item.OnShelf = true
	w.score += placementScore
	w.enqueueEffect(item.Position, item.Type)
	gameplaylog.ItemPlaced(context.Background(), w.publisher, w.tick, itemRef(item), gameplaylog.PlacedPayload{
		ItemType: item.Type,
		Shelf:    item.TargetShelf,
		Score:    w.score,
	})
}

// recycleAfterTheft reintroduces a previously stolen item to the floor at the
// given position and hands one count back, floored at zero.
func (w *World) recycleAfterTheft(item *Item, at Vec3) {
	item.Position = Vec3{X: at.X, Z: at.Z}
	item.OnShelf = false
	w.items = append(w.items, item)
	if w.stolenCount > 0 {
		w.stolenCount--
	}
}

// firstItemWithin returns the first free-floating item in iteration order
// within radius of pos. First match wins; there is deliberately no
// distance ranking between candidates.
func (w *World) firstItemWithin(pos Vec3, radius float64) *Item {
	for _, item := range w.items {
		if item.OnShelf {
			continue
		}
		if item == w.heldItem {
			continue
		}
		if IsNear(pos, item.Position, radius) {
			return item
		}
	}
	return nil
}

// nearestStealableItem returns the closest free-floating item that the
// player is not carrying, or nil when the floor is empty.
func (w *World) nearestStealableItem(pos Vec3) *Item {
	var best *Item
	bestDist := 0.0
	for _, item := range w.items {
		if item.OnShelf || item == w.heldItem {
			continue
		}
		dist := planarDistance(pos, item.Position)
		if best == nil || dist < bestDist {
			best = item
			bestDist = dist
		}
	}
	return best
}

// placementScore is the fixed reward for a correct shelf placement.
const placementScore = 10

func itemRef(item *Item) logging.EntityRef {
	return logging.EntityRef{ID: strconv.FormatInt(item.ID, 10), Kind: logging.EntityKindItem}
}
