package doctors

// Seed returns the built-in specialist directory. In a deployment this would
// come from an operator-managed source; the set below mirrors the live
// directory shape so the booking flow works out of the box.
func Seed() []Doctor {
	return []Doctor{
		{ID: "1", Name: "Dr. Priya Sharma", Specialization: "Gastroenterologist", Experience: 12, Languages: "Hindi, English, Marathi", ConsultationFee: 1500, Rating: 4.9, Email: "priya.sharma@aarogya.health", AvailableSlots: []string{"09:00 AM", "11:30 AM", "02:00 PM", "04:30 PM"}},
		{ID: "2", Name: "Dr. Arjun Reddy", Specialization: "Cardiologist", Experience: 15, Languages: "Telugu, English, Hindi", ConsultationFee: 1800, Rating: 4.8, Email: "arjun.reddy@aarogya.health", AvailableSlots: []string{"10:00 AM", "01:00 PM", "03:30 PM", "05:00 PM"}},
		{ID: "3", Name: "Dr. Kavitha Menon", Specialization: "Dermatologist", Experience: 10, Languages: "Malayalam, English, Tamil", ConsultationFee: 1200, Rating: 4.7, Email: "kavitha.menon@aarogya.health", AvailableSlots: []string{"09:30 AM", "12:00 PM", "02:30 PM", "04:00 PM"}},
		{ID: "4", Name: "Dr. Rajesh Kumar", Specialization: "Neurologist", Experience: 14, Languages: "Hindi, English, Punjabi", ConsultationFee: 2000, Rating: 4.9, Email: "rajesh.kumar@aarogya.health", AvailableSlots: []string{"08:30 AM", "11:00 AM", "01:30 PM", "05:30 PM"}},
		{ID: "5", Name: "Dr. Anjali Gupta", Specialization: "Psychiatrist", Experience: 11, Languages: "Hindi, English, Bengali", ConsultationFee: 1600, Rating: 4.6, Email: "anjali.gupta@aarogya.health", AvailableSlots: []string{"10:30 AM", "12:30 PM", "03:00 PM", "05:30 PM"}},
		{ID: "6", Name: "Dr. Suresh Iyer", Specialization: "Orthopedic Surgeon", Experience: 18, Languages: "Tamil, English, Kannada", ConsultationFee: 2200, Rating: 4.8, Email: "suresh.iyer@aarogya.health", AvailableSlots: []string{"09:00 AM", "11:00 AM", "02:00 PM", "04:00 PM"}},
		{ID: "7", Name: "Dr. Meera Patel", Specialization: "Pediatrician", Experience: 13, Languages: "Gujarati, English, Hindi", ConsultationFee: 1400, Rating: 4.9, Email: "meera.patel@aarogya.health", AvailableSlots: []string{"08:00 AM", "10:30 AM", "01:00 PM", "03:30 PM"}},
		{ID: "8", Name: "Dr. Vikram Singh", Specialization: "Urologist", Experience: 16, Languages: "Punjabi, Hindi, English", ConsultationFee: 1900, Rating: 4.7, Email: "vikram.singh@aarogya.health", AvailableSlots: []string{"09:30 AM", "12:00 PM", "02:30 PM", "05:00 PM"}},
		{ID: "9", Name: "Dr. Lakshmi Rao", Specialization: "Gynecologist", Experience: 14, Languages: "Kannada, English, Telugu", ConsultationFee: 1700, Rating: 4.8, Email: "lakshmi.rao@aarogya.health", AvailableSlots: []string{"10:00 AM", "12:30 PM", "03:00 PM", "05:30 PM"}},
		{ID: "10", Name: "Dr. Amit Joshi", Specialization: "Ophthalmologist", Experience: 12, Languages: "Marathi, Hindi, English", ConsultationFee: 1300, Rating: 4.6, Email: "amit.joshi@aarogya.health", AvailableSlots: []string{"08:30 AM", "11:30 AM", "01:30 PM", "04:30 PM"}},
		{ID: "11", Name: "Dr. Deepika Nair", Specialization: "Endocrinologist", Experience: 10, Languages: "Malayalam, English, Tamil", ConsultationFee: 1800, Rating: 4.7, Email: "deepika.nair@aarogya.health", AvailableSlots: []string{"09:00 AM", "11:00 AM", "02:00 PM", "04:00 PM"}},
		{ID: "12", Name: "Dr. Ravi Agarwal", Specialization: "Pulmonologist", Experience: 17, Languages: "Hindi, English, Rajasthani", ConsultationFee: 2000, Rating: 4.9, Email: "ravi.agarwal@aarogya.health", AvailableSlots: []string{"10:00 AM", "12:00 PM", "03:00 PM", "05:00 PM"}},
		{ID: "13", Name: "Dr. Sushma Bhatt", Specialization: "Rheumatologist", Experience: 11, Languages: "Gujarati, Hindi, English", ConsultationFee: 1600, Rating: 4.5, Email: "sushma.bhatt@aarogya.health", AvailableSlots: []string{"09:30 AM", "11:30 AM", "01:30 PM", "04:30 PM"}},
		{ID: "14", Name: "Dr. Karthik Krishnamurthy", Specialization: "Oncologist", Experience: 19, Languages: "Tamil, English, Telugu", ConsultationFee: 2500, Rating: 4.9, Email: "karthik.krishnamurthy@aarogya.health", AvailableSlots: []string{"08:00 AM", "10:00 AM", "01:00 PM", "03:00 PM"}},
		{ID: "15", Name: "Dr. Sunita Mishra", Specialization: "Nephrologist", Experience: 13, Languages: "Hindi, English, Odia", ConsultationFee: 1900, Rating: 4.8, Email: "sunita.mishra@aarogya.health", AvailableSlots: []string{"09:00 AM", "11:30 AM", "02:30 PM", "05:00 PM"}},
		{ID: "16", Name: "Dr. Harish Chandra", Specialization: "ENT Specialist", Experience: 15, Languages: "Hindi, English, Punjabi", ConsultationFee: 1500, Rating: 4.7, Email: "harish.chandra@aarogya.health", AvailableSlots: []string{"08:30 AM", "10:30 AM", "01:00 PM", "04:00 PM"}},
		{ID: "17", Name: "Dr. Preeti Desai", Specialization: "Hematologist", Experience: 12, Languages: "Gujarati, English, Hindi", ConsultationFee: 1800, Rating: 4.6, Email: "preeti.desai@aarogya.health", AvailableSlots: []string{"10:00 AM", "12:30 PM", "02:00 PM", "04:30 PM"}},
		{ID: "18", Name: "Dr. Manoj Tripathi", Specialization: "Anesthesiologist", Experience: 14, Languages: "Hindi, English, Bengali", ConsultationFee: 1700, Rating: 4.8, Email: "manoj.tripathi@aarogya.health", AvailableSlots: []string{"09:30 AM", "11:00 AM", "01:30 PM", "05:30 PM"}},
		{ID: "19", Name: "Dr. Radha Venkatesh", Specialization: "Radiologist", Experience: 16, Languages: "Tamil, English, Kannada", ConsultationFee: 1600, Rating: 4.7, Email: "radha.venkatesh@aarogya.health", AvailableSlots: []string{"08:00 AM", "10:00 AM", "02:00 PM", "04:00 PM"}},
		{ID: "20", Name: "Dr. Ashok Bansal", Specialization: "General Physician", Experience: 20, Languages: "Hindi, English, Punjabi", ConsultationFee: 1200, Rating: 4.9, Email: "ashok.bansal@aarogya.health", AvailableSlots: []string{"08:30 AM", "11:30 AM", "02:30 PM", "05:00 PM"}},
	}
}
