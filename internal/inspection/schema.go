package inspection

// checklist is the shared inspection schema: category -> item -> allowed
// condition values. Every surface that renders or validates a checklist
// consumes this one definition.
var checklist = map[string]map[string][]string{
	"engine": {
		"Engine Oil":         {"Good", "Ok", "Fair", "Poor", "Needs Replacement"},
		"Engine Oil Level":   {"Ok", "Low", "Overfilled", "Empty"},
		"Engine Sound":       {"Normal", "Rough Idle", "Knocking", "Not Working"},
		"Air Filter":         {"Clean", "Dirty", "Needs Replacement"},
		"Coolant Level":      {"Ok", "Low", "Empty", "Contaminated"},
		"Engine Mounts":      {"Good", "Worn", "Broken"},
		"Belts and Hoses":    {"Good", "Cracked", "Frayed", "Needs Replacement"},
		"Engine Temperature": {"Normal", "Running Hot", "Overheating"},
		"Exhaust Smoke":      {"Normal", "White Smoke", "Black Smoke", "Blue Smoke"},
		"Engine Performance": {"Excellent", "Good", "Fair", "Poor"},
	},
	"transmission": {
		"Gear Shifting":      {"Smooth", "Hard", "Sluggish", "Not Working"},
		"Clutch Operation":   {"Good", "Weak", "Slipping", "Not Working"},
		"Transmission Fluid": {"Ok", "Low", "Dirty", "Burnt"},
		"Transmission Noise": {"Normal", "Whining", "Grinding", "Clunking"},
		"Reverse Gear":       {"Working", "Hard to Engage", "Not Working"},
		"CV Joints":          {"Good", "Clicking", "Worn", "Damaged"},
		"Differential":       {"Normal", "Noisy", "Leaking", "Damaged"},
	},
	"brakes": {
		"Front Brake Pads": {"Good", "Worn", "Needs Replacement"},
		"Rear Brake Pads":  {"Good", "Worn", "Needs Replacement"},
		"Brake Fluid":      {"Ok", "Low", "Dirty", "Empty"},
		"Brake Pedal Feel": {"Firm", "Soft", "Spongy", "No Pressure"},
		"Brake Rotors":     {"Good", "Scored", "Warped", "Cracked"},
		"Handbrake":        {"Working", "Loose", "Tight", "Not Working"},
		"Brake Lines":      {"Good", "Corroded", "Leaking", "Damaged"},
		"ABS System":       {"Working", "Warning Light", "Not Working", "N/A"},
	},
	"suspension": {
		"Front Suspension": {"Good", "Worn", "Bouncy", "Damaged"},
		"Rear Suspension":  {"Good", "Worn", "Sagging", "Damaged"},
		"Shock Absorbers":  {"Good", "Weak", "Leaking", "Broken"},
		"Springs":          {"Good", "Sagging", "Broken"},
		"Ball Joints":      {"Good", "Loose", "Worn", "Damaged"},
		"Tie Rod Ends":     {"Good", "Loose", "Worn", "Damaged"},
		"Bushings":         {"Good", "Cracked", "Missing", "Damaged"},
	},
	"steering": {
		"Steering Feel":      {"Responsive", "Heavy", "Light", "Vibrating"},
		"Steering Alignment": {"Centered", "Pulls Left", "Pulls Right", "Wandering"},
		"Power Steering":     {"Working", "Heavy", "Noisy", "Not Working"},
		"Steering Fluid":     {"Ok", "Low", "Dirty", "Empty"},
		"Steering Wheel":     {"Good", "Worn", "Loose", "Damaged"},
		"Steering Column":    {"Good", "Loose", "Damaged"},
		"Rack and Pinion":    {"Good", "Leaking", "Worn", "Damaged"},
	},
	"electrical": {
		"Battery":               {"Good", "Weak", "Dead"},
		"Alternator":            {"Charging", "Weak", "Not Charging"},
		"Starter":               {"Working", "Weak", "Not Working"},
		"Lights - Headlights":   {"Working", "Dim", "Not Working"},
		"Lights - Taillights":   {"Working", "Dim", "Not Working"},
		"Lights - Turn Signals": {"Working", "Fast Blinking", "Not Working"},
		"Dashboard Lights":      {"Working", "Some Out", "Not Working"},
		"Horn":                  {"Working", "Weak", "Not Working"},
		"Wipers":                {"Working", "Streaking", "Not Working"},
		"Air Conditioning":      {"Cold", "Warm", "Not Working"},
		"Radio/Audio":           {"Working", "Poor Reception", "Not Working"},
		"Power Windows":         {"All Working", "Some Not Working", "None Working"},
		"Central Locking":       {"Working", "Intermittent", "Not Working"},
	},
	"interior": {
		"Seats":             {"Excellent", "Good", "Worn", "Torn"},
		"Dashboard":         {"Good", "Cracked", "Faded", "Damaged"},
		"Door Panels":       {"Good", "Worn", "Loose", "Damaged"},
		"Carpet/Floor Mats": {"Clean", "Stained", "Worn", "Missing"},
		"Roof Lining":       {"Good", "Sagging", "Stained", "Damaged"},
		"Instruments":       {"All Working", "Some Not Working", "None Working"},
		"Seat Belts":        {"Working", "Frayed", "Stuck", "Missing"},
		"Interior Lights":   {"Working", "Some Out", "Not Working"},
		"Climate Control":   {"Working", "Intermittent", "Not Working"},
	},
	"exterior": {
		"Paint Condition": {"Excellent", "Good", "Faded", "Scratched"},
		"Body Panels":     {"Straight", "Minor Dents", "Major Dents", "Rust"},
		"Bumpers":         {"Good", "Scratched", "Cracked", "Missing"},
		"Doors":           {"Align Properly", "Loose", "Hard to Close", "Damaged"},
		"Windows":         {"Clear", "Scratched", "Cracked", "Broken"},
		"Mirrors":         {"Good", "Cracked", "Loose", "Missing"},
		"Trim/Molding":    {"Good", "Loose", "Faded", "Missing"},
		"Exhaust System":  {"Good", "Noisy", "Smoking", "Damaged"},
		"Undercarriage":   {"Clean", "Minor Rust", "Heavy Rust", "Damaged"},
	},
	"tyres": {
		"Front Left Tyre":  {"Good", "Worn", "Bald", "Damaged"},
		"Front Right Tyre": {"Good", "Worn", "Bald", "Damaged"},
		"Rear Left Tyre":   {"Good", "Worn", "Bald", "Damaged"},
		"Rear Right Tyre":  {"Good", "Worn", "Bald", "Damaged"},
		"Spare Tyre":       {"Good", "Worn", "Flat", "Missing"},
		"Tyre Pressure":    {"Ok", "Low", "High", "Check Required"},
		"Wheel Alignment":  {"Good", "Uneven Wear", "Needs Alignment"},
		"Wheel Balance":    {"Good", "Vibration", "Needs Balancing"},
		"Rims/Wheels":      {"Good", "Scratched", "Bent", "Cracked"},
	},
}

// Schema returns the checklist schema. Callers must treat the returned map
// as read-only.
func Schema() map[string]map[string][]string {
	return checklist
}
