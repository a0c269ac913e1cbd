// File: database/repository/schedule/times.go
package scheduleRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const dayLayout = "2006-01-02"

// Times returns the master's calendar for every day touched by [from, to].
func (repo *mongoScheduleRepo) Times(ctx context.Context, masterID string, from, to time.Time) (map[string]models.DayAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	days := DaySpan(from, to)
	if len(days) == 0 {
		return map[string]models.DayAvailability{}, nil
	}
	spanStart := startOfDay(from)
	spanEnd := startOfDay(to).AddDate(0, 0, 1)

	var closed []models.MasterClosedDate
	if err := repo.findAll(ctx, repo.closedColl, bson.M{"masterId": masterID, "date": bson.M{"$in": days}}, &closed); err != nil {
		return nil, fmt.Errorf("failed to fetch closed dates: %w", err)
	}

	var working []models.MasterWorkingDay
	if err := repo.findAll(ctx, repo.workingColl, bson.M{"masterId": masterID}, &working); err != nil {
		return nil, fmt.Errorf("failed to fetch working days: %w", err)
	}

	var blocks []models.Blocked
	if err := repo.findAll(ctx, repo.blockedColl, bson.M{"master_id": masterID, "date": bson.M{"$in": days}}, &blocks); err != nil {
		return nil, fmt.Errorf("failed to fetch blocked spans: %w", err)
	}

	var bookings []models.Booking
	bookingFilter := bson.M{
		"masterId":  masterID,
		"status":    bson.M{"$ne": models.BookingStatusCanceled},
		"startDate": bson.M{"$lt": spanEnd},
		"endDate":   bson.M{"$gt": spanStart},
	}
	if err := repo.findAll(ctx, repo.bookingColl, bookingFilter, &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	return BuildDayAvailability(days, from.Location(), closed, working, blocks, bookings), nil
}

func (repo *mongoScheduleRepo) findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) error {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// DaySpan lists the calendar days from from's day through to's day.
func DaySpan(from, to time.Time) []string {
	if to.Before(from) {
		return nil
	}
	var days []string
	for d := startOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayLayout))
	}
	return days
}

// BuildDayAvailability folds the raw schedule documents into per-day availability.
func BuildDayAvailability(
	days []string,
	loc *time.Location,
	closed []models.MasterClosedDate,
	working []models.MasterWorkingDay,
	blocks []models.Blocked,
	bookings []models.Booking,
) map[string]models.DayAvailability {
	if loc == nil {
		loc = time.UTC
	}
	closedDates := make(map[string]bool, len(closed))
	for _, c := range closed {
		closedDates[c.Date] = true
	}
	offDays := make(map[string]bool, len(working))
	for _, w := range working {
		if w.Disabled {
			offDays[strings.ToLower(w.Day)] = true
		}
	}

	result := make(map[string]models.DayAvailability, len(days))
	for _, day := range days {
		date, err := time.ParseInLocation(dayLayout, day, loc)
		if err != nil {
			continue
		}
		avail := models.DayAvailability{
			Closed: closedDates[day] || offDays[strings.ToLower(date.Weekday().String())],
		}
		for _, b := range blocks {
			if b.Date == day && b.End > b.Start {
				avail.DisabledTimes = append(avail.DisabledTimes, b.Start, b.End)
			}
		}
		dayStart, dayEnd := date, date.AddDate(0, 0, 1)
		for _, bk := range bookings {
			start, end := bk.StartDate.In(loc), bk.EndDate.In(loc)
			if !start.Before(dayEnd) || !end.After(dayStart) {
				continue
			}
			avail.DisabledTimes = append(avail.DisabledTimes, minutesInto(dayStart, start), minutesInto(dayStart, end))
		}
		result[day] = avail
	}
	return result
}

// minutesInto clamps t into the day starting at dayStart and returns minutes from midnight.
func minutesInto(dayStart, t time.Time) int {
	minutes := int(t.Sub(dayStart) / time.Minute)
	if minutes < 0 {
		return 0
	}
	if minutes > 24*60 {
		return 24 * 60
	}
	return minutes
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
