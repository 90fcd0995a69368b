package reconciler

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	cachemem "park-safety-service/internal/adapters/cache/memory"
	storagemem "park-safety-service/internal/adapters/storage/memory"
	"park-safety-service/internal/domain/animals"
	"park-safety-service/internal/domain/events"
	"park-safety-service/internal/domain/hungerindex"
	"park-safety-service/internal/platform/logger"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	animals   animals.AnimalRepository
	eventLog  animals.EventLogRepository
	locations animals.LocationRepository
	index     *hungerindex.Store
}

func newFixture() *fixture {
	animalRepo := storagemem.NewAnimalsRepo()
	eventLog := storagemem.NewEventLogRepo()
	locationRepo := storagemem.NewLocationsRepo()
	index := hungerindex.NewStore(cachemem.NewKV(), logger.Nop{})

	return &fixture{
		svc:       NewService(animalRepo, eventLog, locationRepo, index, logger.Nop{}),
		animals:   animalRepo,
		eventLog:  eventLog,
		locations: locationRepo,
		index:     index,
	}
}

func added(id int64, t time.Time, herbivore bool, digestion float64) events.AnimalAdded {
	return events.AnimalAdded{
		Base:                 events.Base{ParkID: 1, Time: t},
		AnimalID:             id,
		Name:                 "Rexy",
		Species:              "Tyrannosaurus rex",
		Sex:                  "female",
		DigestionPeriodHours: digestion,
		Herbivore:            herbivore,
	}
}

func fed(id int64, t time.Time) events.AnimalFed {
	return events.AnimalFed{Base: events.Base{ParkID: 1, Time: t}, AnimalID: id}
}

func moved(id int64, loc string, t time.Time) events.AnimalLocationUpdated {
	return events.AnimalLocationUpdated{Base: events.Base{ParkID: 1, Time: t}, AnimalID: id, Location: loc}
}

func removed(id int64, t time.Time) events.AnimalRemoved {
	return events.AnimalRemoved{Base: events.Base{ParkID: 1, Time: t}, AnimalID: id}
}

func mustApply(t *testing.T, f *fixture, evs ...events.ParkEvent) {
	t.Helper()
	for _, ev := range evs {
		if err := f.svc.Apply(context.Background(), ev); err != nil {
			t.Fatalf("apply %s: %v", ev.EventKind(), err)
		}
	}
}

func TestAnimalAdded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f, added(7, base, false, 48))

	a, err := f.animals.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("get animal: %v", err)
	}
	if a.Name == nil || *a.Name != "Rexy" || !a.IsActive {
		t.Fatalf("unexpected animal: %+v", a)
	}
	if a.AddedAt == nil || !a.AddedAt.Equal(base) {
		t.Fatal("added_at must be the event time")
	}

	entries, _ := f.eventLog.ListByTime(ctx)
	if len(entries) != 1 || entries[0].Kind != "animal_added" {
		t.Fatalf("expected one added log entry, got %+v", entries)
	}
	if entries[0].Metadata["species"] != "Tyrannosaurus rex" {
		t.Fatalf("added metadata must carry the profile, got %v", entries[0].Metadata)
	}

	rec, ok, _ := f.index.GetRecord(ctx, 7)
	if !ok {
		t.Fatal("derived record must exist")
	}
	if rec.Herbivore == nil || *rec.Herbivore || rec.DigestionPeriodHours == nil {
		t.Fatalf("derived record must carry diet and digestion, got %+v", rec)
	}
	if rec.Location != nil {
		t.Fatal("added must not set a location")
	}
}

func TestAnimalAddedDoesNotResurrectRemoved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f,
		added(7, base, false, 48),
		removed(7, base.Add(time.Hour)),
		added(7, base.Add(2*time.Hour), false, 48),
	)

	a, err := f.animals.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("get animal: %v", err)
	}
	if a.IsActive {
		t.Fatal("re-add must keep active=false after removal")
	}
}

func TestAnimalAddedDefaultsActiveWhenUnknown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f, added(8, base, true, 12))

	a, _ := f.animals.GetByID(ctx, 8)
	if !a.IsActive {
		t.Fatal("first add must default to active")
	}
	rec, _, _ := f.index.GetRecord(ctx, 8)
	if rec.IsActive == nil || !*rec.IsActive {
		t.Fatal("derived record must carry active=true")
	}
}

func TestAnimalFed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f, added(7, base, false, 48), fed(7, base.Add(time.Hour)))

	a, _ := f.animals.GetByID(ctx, 7)
	if a.LastFedAt == nil || !a.LastFedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("last_fed_at must be the event time, got %+v", a.LastFedAt)
	}
	if a.Name == nil {
		t.Fatal("feeding must not wipe the profile")
	}

	rec, _, _ := f.index.GetRecord(ctx, 7)
	if !rec.LastFedAt.Valid || !rec.LastFedAt.Time.Equal(base.Add(time.Hour)) {
		t.Fatalf("derived record must carry last fed, got %+v", rec.LastFedAt)
	}
}

func TestAnimalFedBeforeAddedSynthesizesPartialRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f, fed(9, base))

	a, err := f.animals.GetByID(ctx, 9)
	if err != nil {
		t.Fatalf("partial animal must exist: %v", err)
	}
	if a.LastFedAt == nil || a.ParkID == nil {
		t.Fatalf("partial record must carry park and last fed, got %+v", a)
	}
	// lo que no se sabe queda en nil, nunca en cero
	if a.Name != nil || a.Species != nil || a.Herbivore != nil {
		t.Fatalf("unknown fields must stay nil, got %+v", a)
	}
}

func TestAnimalLocationUpdated(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f, added(7, base, false, 48), moved(7, "a5", base.Add(time.Hour)))

	a, _ := f.animals.GetByID(ctx, 7)
	// el autoritativo guarda el código tal como llegó
	if a.CurrentLocation == nil || *a.CurrentLocation != "a5" {
		t.Fatalf("unexpected location: %+v", a.CurrentLocation)
	}

	rec, _, _ := f.index.GetRecord(ctx, 7)
	if rec.Location == nil || *rec.Location != "A5" {
		t.Fatalf("derived record must hold the normalized location, got %+v", rec.Location)
	}

	// carnívoro sin constancia de comida: riesgo
	m, _ := f.index.HungryAt(ctx, "A5")
	if len(m) != 1 {
		t.Fatalf("expected hunger entry, got %v", m)
	}

	entries, _ := f.eventLog.ListByTime(ctx)
	last := entries[len(entries)-1]
	if last.Metadata["location"] != "a5" {
		t.Fatalf("location metadata must be logged, got %v", last.Metadata)
	}
}

func TestStaleLocationEventDoesNotRegress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f,
		added(7, base, false, 2),
		fed(7, base.Add(-100*time.Hour)), // comió hace mucho: con hambre
		moved(7, "X1", base.Add(10*time.Second)),
		moved(7, "Y1", base.Add(5*time.Second)), // demorado
	)

	rec, _, _ := f.index.GetRecord(ctx, 7)
	if rec.Location == nil || *rec.Location != "X1" {
		t.Fatalf("stale move must not regress location, got %+v", rec.Location)
	}
	if m, _ := f.index.HungryAt(ctx, "Y1"); len(m) != 0 {
		t.Fatalf("stale move must not index at Y1, got %v", m)
	}
	if m, _ := f.index.HungryAt(ctx, "X1"); len(m) != 1 {
		t.Fatalf("expected animal still indexed at X1, got %v", m)
	}

	// el autoritativo es last-writer-wins sin guard: queda el último aplicado
	a, _ := f.animals.GetByID(ctx, 7)
	if a.CurrentLocation == nil || *a.CurrentLocation != "Y1" {
		t.Fatalf("authoritative location follows application order, got %+v", a.CurrentLocation)
	}
}

func TestAnimalRemoved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f,
		added(7, base, false, 48),
		moved(7, "A5", base.Add(time.Hour)),
		removed(7, base.Add(2*time.Hour)),
	)

	a, _ := f.animals.GetByID(ctx, 7)
	if a.IsActive || a.RemovedAt == nil {
		t.Fatalf("expected inactive with removed_at, got %+v", a)
	}

	if _, ok, _ := f.index.GetRecord(ctx, 7); ok {
		t.Fatal("derived record must be deleted")
	}
	if m, _ := f.index.HungryAt(ctx, "A5"); len(m) != 0 {
		t.Fatalf("hunger entry must be deleted, got %v", m)
	}
}

func TestAnimalRemovedBeforeAddedSynthesizesInactiveRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f, removed(9, base))

	a, err := f.animals.GetByID(ctx, 9)
	if err != nil {
		t.Fatalf("partial animal must exist: %v", err)
	}
	if a.IsActive || a.RemovedAt == nil {
		t.Fatalf("synthesized record must be inactive, got %+v", a)
	}
}

func TestMaintenancePerformed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ev := events.MaintenancePerformed{Base: events.Base{ParkID: 1, Time: base}, Location: "b2"}
	mustApply(t, f, ev)

	list, _ := f.locations.List(ctx)
	if len(list) != 1 || list[0].Location != "b2" || !list[0].MaintenancePerformed.Equal(base) {
		t.Fatalf("unexpected locations: %+v", list)
	}

	// maintenance no genera entradas de log
	entries, _ := f.eventLog.ListByTime(ctx)
	if len(entries) != 0 {
		t.Fatalf("maintenance must not be logged, got %+v", entries)
	}
}

type failingLocationRepo struct {
	animals.LocationRepository
}

func (failingLocationRepo) UpsertMaintenance(context.Context, string, int64, time.Time) error {
	return errors.New("store unavailable")
}

func TestMaintenanceFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.svc = NewService(f.animals, f.eventLog, failingLocationRepo{f.locations}, f.index, logger.Nop{})

	ev := events.MaintenancePerformed{Base: events.Base{ParkID: 1, Time: base}, Location: "b2"}
	if err := f.svc.Apply(context.Background(), ev); err != nil {
		t.Fatalf("maintenance failure must not propagate, got %v", err)
	}
}

func TestIdempotentRedelivery(t *testing.T) {
	ctx := context.Background()

	evs := []events.ParkEvent{
		added(7, base, false, 48),
		fed(7, base.Add(time.Hour)),
		moved(7, "A5", base.Add(2*time.Hour)),
		removed(7, base.Add(3*time.Hour)),
	}

	for i, ev := range evs {
		// re-entrega inmediata del evento i
		f := newFixture()
		mustApply(t, f, evs[:i+1]...)
		mustApply(t, f, ev)

		once := newFixture()
		mustApply(t, once, evs[:i+1]...)

		gotRec, gotOK, _ := f.index.GetRecord(ctx, 7)
		wantRec, wantOK, _ := once.index.GetRecord(ctx, 7)
		if gotOK != wantOK || !reflect.DeepEqual(gotRec, wantRec) {
			t.Fatalf("re-delivery of %s changed the derived record: %+v vs %+v", ev.EventKind(), gotRec, wantRec)
		}

		gotA, gotErr := f.animals.GetByID(ctx, 7)
		wantA, wantErr := once.animals.GetByID(ctx, 7)
		if !errors.Is(gotErr, wantErr) || !reflect.DeepEqual(gotA, wantA) {
			t.Fatalf("re-delivery of %s changed the animal: %+v vs %+v", ev.EventKind(), gotA, wantA)
		}
	}
}

func TestWipeAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f,
		added(7, base, false, 48),
		moved(7, "A5", base.Add(time.Hour)),
		events.MaintenancePerformed{Base: events.Base{ParkID: 1, Time: base}, Location: "b2"},
	)

	if err := f.svc.WipeAll(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	if list, _ := f.animals.ListActive(ctx); len(list) != 0 {
		t.Fatal("animals must be gone")
	}
	if entries, _ := f.eventLog.ListByTime(ctx); len(entries) != 0 {
		t.Fatal("log must be gone")
	}
	if list, _ := f.locations.List(ctx); len(list) != 0 {
		t.Fatal("locations must be gone")
	}
	if _, ok, _ := f.index.GetRecord(ctx, 7); ok {
		t.Fatal("derived records must be gone")
	}
	if m, _ := f.index.HungryAt(ctx, "A5"); len(m) != 0 {
		t.Fatal("hunger indices must be gone")
	}

	// idempotente
	if err := f.svc.WipeAll(ctx); err != nil {
		t.Fatalf("second wipe: %v", err)
	}
}

func TestRebuildIndexFromLog(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustApply(t, f,
		added(7, base, false, 48),
		moved(7, "A5", base.Add(time.Hour)),
		added(8, base, true, 12),
		moved(8, "A5", base.Add(time.Hour)),
		fed(7, base.Add(2*time.Hour)),
	)

	wantRec, _, _ := f.index.GetRecord(ctx, 7)
	wantIdx, _ := f.index.HungryAt(ctx, "A5")

	if err := f.svc.RebuildIndex(ctx); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	gotRec, ok, _ := f.index.GetRecord(ctx, 7)
	if !ok || !reflect.DeepEqual(gotRec, wantRec) {
		t.Fatalf("rebuilt record differs: %+v vs %+v", gotRec, wantRec)
	}
	gotIdx, _ := f.index.HungryAt(ctx, "A5")
	if !reflect.DeepEqual(gotIdx, wantIdx) {
		t.Fatalf("rebuilt index differs: %v vs %v", gotIdx, wantIdx)
	}
}
