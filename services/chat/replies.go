package chat

import (
	"fmt"
	"strings"

	"roomify/models"
)

func writeRoomLines(sb *strings.Builder, rooms []models.Room) {
	sb.WriteString("Available meeting rooms:\n")
	for _, r := range rooms {
		fmt.Fprintf(sb, "- [%s] %s (%s, seats %d, %d/hr)\n",
			r.ID, r.Name, r.RoomType, r.Capacity, r.HourlyRate)
	}
}

func roomListReply(rooms []models.Room) string {
	var sb strings.Builder
	writeRoomLines(&sb, rooms)
	sb.WriteString("Reply with: select room {id}")
	return sb.String()
}

// menuReply lists the catalogue outside a reservation flow.
func menuReply(rooms []models.Room) string {
	var sb strings.Builder
	writeRoomLines(&sb, rooms)
	sb.WriteString("Send \"book\" to start a reservation.")
	return sb.String()
}

func datePromptReply() string {
	return "Which date? Send YYYY-MM-DD (e.g. 2026-03-15) or M-D for this year (e.g. 3-15)."
}

// slotGridReply renders the hour-aligned candidate slots with their live
// availability. flagged, when non-empty, marks a slot the user just tried
// that became unavailable in the meantime.
func slotGridReply(date string, slots []CandidateSlot, flagged string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Time slots for %s:\n", date)
	for _, slot := range slots {
		mark := "available"
		if !slot.Available {
			mark = "taken"
		}
		if flagged != "" && slot.Start == flagged {
			mark = "just taken"
		}
		fmt.Fprintf(&sb, "- %s %s (%s)\n", slot.Start, slot.End, mark)
	}
	sb.WriteString("Reply with: select slot {start} {end}, e.g. select slot 09:00 10:00")
	return sb.String()
}

func confirmReply(d Draft, price int) string {
	var sb strings.Builder
	sb.WriteString("Please confirm your reservation:\n")
	fmt.Fprintf(&sb, "Room: %s\n", d.RoomName)
	fmt.Fprintf(&sb, "Date: %s\n", d.Date)
	fmt.Fprintf(&sb, "Time: %s - %s\n", d.Start, d.End)
	fmt.Fprintf(&sb, "Name: %s\n", d.Name)
	fmt.Fprintf(&sb, "Phone: %s\n", d.Phone)
	fmt.Fprintf(&sb, "Email: %s\n", d.Email)
	fmt.Fprintf(&sb, "Total: %d\n", price)
	sb.WriteString("Reply \"confirm\" to book, or \"cancel\" to abandon.")
	return sb.String()
}

func bookedReply(b *models.Booking) string {
	seg := b.Segments[0]
	return fmt.Sprintf("Booked! Your booking number is %s (%s on %s, %s - %s, total %d). A confirmation email is on its way.",
		b.BookingNumber, b.RoomName, b.Date, seg.Start, seg.End, b.TotalPrice)
}

func myBookingsReply(bookings []models.Booking) string {
	if len(bookings) == 0 {
		return "You have no upcoming bookings."
	}
	var sb strings.Builder
	sb.WriteString("Your bookings:\n")
	for _, b := range bookings {
		for _, seg := range b.Segments {
			fmt.Fprintf(&sb, "- %s: %s on %s, %s - %s\n",
				b.BookingNumber, b.RoomName, b.Date, seg.Start, seg.End)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func bookingDetailReply(b *models.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking %s (%s):\n", b.BookingNumber, b.Status)
	fmt.Fprintf(&sb, "Room: %s\n", b.RoomName)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	for _, seg := range b.Segments {
		fmt.Fprintf(&sb, "Time: %s - %s\n", seg.Start, seg.End)
	}
	fmt.Fprintf(&sb, "Total: %d", b.TotalPrice)
	return sb.String()
}

func helpReply() string {
	return strings.Join([]string{
		"I can help you reserve a meeting room. Commands:",
		"- book: start a reservation",
		"- my bookings: list your upcoming reservations",
		"- query {booking number}: look up a reservation",
		"- timeslot {room id} [date]: show a room's availability",
		"- bind phone {number}: link your phone for faster booking",
		"- cancel: abandon a reservation in progress",
		"- menu: show the room list",
	}, "\n")
}

func welcomeReply() string {
	return "Welcome! Send \"book\" to reserve a meeting room, or \"help\" to see everything I can do."
}

func unrecognizedReply() string {
	return "Sorry, I didn't understand that. Send \"help\" to see available commands."
}
