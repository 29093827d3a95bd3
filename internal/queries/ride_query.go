package queries

import (
	"sort"
	"time"

	"github.com/danuarts/ridehail/internal/geo"
	"github.com/danuarts/ridehail/internal/helpers"
	"github.com/danuarts/ridehail/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderingPickupTime     = "pickup_time"
	OrderingPickupTimeDesc = "-pickup_time"
	OrderingDistance       = "distance"
	OrderingDistanceDesc   = "-distance"

	// EventWindow bounds the events attached to each ride in list context,
	// keeping per-ride event cost flat regardless of history depth.
	EventWindow = 24 * time.Hour
)

// RideListParams carries the raw, optional query inputs for a ride listing.
// Latitude and Longitude stay strings: values that fail to parse as finite
// numbers silently disable distance computation rather than erroring.
type RideListParams struct {
	Status     string
	RiderEmail string
	Latitude   string
	Longitude  string
	Ordering   string
	Page       int
	PageSize   int
}

// RideListItem is a ride with its derived distance (present only when the
// query supplied a valid reference point) and its windowed recent events.
type RideListItem struct {
	models.Ride
	DistanceToPickup *float64           `json:"distance_to_pickup,omitempty"`
	TodaysRideEvents []models.RideEvent `json:"todays_ride_events"`
}

// ListRides composes the ride list view: equality filters, optional distance
// ranking against a query point, and a trailing 24-hour event window per
// ride. It is a pure read path and issues at most three queries: a count,
// the rides with their user summaries, and the windowed events for the page.
func ListRides(db *gorm.DB, params RideListParams) ([]RideListItem, int64, error) {
	now := time.Now().UTC()

	query := db.Model(&models.Ride{})
	if params.Status != "" {
		query = query.Where("rides.status = ?", params.Status)
	}
	if params.RiderEmail != "" {
		query = query.
			Joins("JOIN users AS riders ON riders.id = rides.rider_id").
			Where("LOWER(riders.email) = LOWER(?)", params.RiderEmail)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	lat, latOK := helpers.ParseFiniteFloat(params.Latitude)
	lon, lonOK := helpers.ParseFiniteFloat(params.Longitude)
	hasGeo := latOK && lonOK

	ordering := resolveOrdering(params.Ordering, hasGeo)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = helpers.DefaultPageSize
	}
	offset := (page - 1) * pageSize

	// Scope the select to the rides table so the rider join cannot leak
	// ambiguous columns into the scan.
	var rides []models.Ride
	base := query.Select("rides.*").Preload("Rider").Preload("Driver")

	switch ordering {
	case OrderingDistance, OrderingDistanceDesc:
		// Distance is a derived value, so the ranking happens here rather
		// than in SQL: fetch the matching set once, rank, then page.
		if err := base.Find(&rides).Error; err != nil {
			return nil, 0, err
		}
		rides = rankByDistance(rides, lat, lon, ordering == OrderingDistanceDesc)
		rides = pageSlice(rides, offset, pageSize)
	case OrderingPickupTime:
		if err := base.Order("rides.pickup_time ASC, rides.id ASC").
			Offset(offset).Limit(pageSize).Find(&rides).Error; err != nil {
			return nil, 0, err
		}
	default:
		if err := base.Order("rides.pickup_time DESC, rides.id ASC").
			Offset(offset).Limit(pageSize).Find(&rides).Error; err != nil {
			return nil, 0, err
		}
	}

	eventsByRide, err := recentEventsByRide(db, rideIDs(rides), now)
	if err != nil {
		return nil, 0, err
	}

	items := make([]RideListItem, len(rides))
	for i, ride := range rides {
		item := RideListItem{Ride: ride, TodaysRideEvents: []models.RideEvent{}}
		if events, ok := eventsByRide[ride.ID]; ok {
			item.TodaysRideEvents = events
		}
		if hasGeo {
			distance := geo.Distance(lat, lon, ride.PickupLatitude, ride.PickupLongitude)
			item.DistanceToPickup = &distance
		}
		items[i] = item
	}

	return items, count, nil
}

// GetRide returns a ride with rider/driver summaries and its full event
// history, newest first. Returns gorm.ErrRecordNotFound when absent.
func GetRide(db *gorm.DB, rideID uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	err := db.
		Preload("Rider").
		Preload("Driver").
		Preload("Events", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("ride_events.created_at DESC")
		}).
		Where("id = ?", rideID).
		First(&ride).Error
	if err != nil {
		return nil, err
	}
	if ride.Events == nil {
		ride.Events = []models.RideEvent{}
	}
	return &ride, nil
}

func resolveOrdering(ordering string, hasGeo bool) string {
	switch ordering {
	case OrderingPickupTime, OrderingPickupTimeDesc:
		return ordering
	case OrderingDistance, OrderingDistanceDesc:
		if hasGeo {
			return ordering
		}
	}
	return OrderingPickupTimeDesc
}

func rankByDistance(rides []models.Ride, lat, lon float64, descending bool) []models.Ride {
	distances := make(map[uuid.UUID]float64, len(rides))
	for _, ride := range rides {
		distances[ride.ID] = geo.Distance(lat, lon, ride.PickupLatitude, ride.PickupLongitude)
	}

	sort.SliceStable(rides, func(i, j int) bool {
		di, dj := distances[rides[i].ID], distances[rides[j].ID]
		if di != dj {
			if descending {
				return di > dj
			}
			return di < dj
		}
		// Deterministic tie-break so equidistant rides paginate stably.
		return rides[i].ID.String() < rides[j].ID.String()
	})

	return rides
}

func pageSlice(rides []models.Ride, offset, limit int) []models.Ride {
	if offset >= len(rides) {
		return nil
	}
	end := offset + limit
	if end > len(rides) {
		end = len(rides)
	}
	return rides[offset:end]
}

func rideIDs(rides []models.Ride) []uuid.UUID {
	ids := make([]uuid.UUID, len(rides))
	for i, ride := range rides {
		ids[i] = ride.ID
	}
	return ids
}

// recentEventsByRide fetches the trailing 24-hour event window for a whole
// page of rides in one query. The cutoff is derived from a single "now"
// captured by the caller, so every ride in the response shares it.
func recentEventsByRide(db *gorm.DB, ids []uuid.UUID, now time.Time) (map[uuid.UUID][]models.RideEvent, error) {
	byRide := make(map[uuid.UUID][]models.RideEvent, len(ids))
	if len(ids) == 0 {
		return byRide, nil
	}

	var events []models.RideEvent
	err := db.
		Where("ride_id IN ?", ids).
		Where("created_at >= ?", now.Add(-EventWindow)).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		byRide[event.RideID] = append(byRide[event.RideID], event)
	}
	return byRide, nil
}
