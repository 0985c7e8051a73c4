package notify

// Email bodies are small self-contained HTML documents rendered with strict
// missing-key semantics. Field names mirror the appointment request payload.

const doctorRequestHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #3367d6;">New Patient Appointment Request</h2>
  <p>A patient has requested a video consultation with you.</p>
  <table cellpadding="6">
    <tr><td><b>Patient</b></td><td>{{.PatientEmail}}</td></tr>
    <tr><td><b>Requested time</b></td><td>{{.ScheduledTime}}</td></tr>
    <tr><td><b>Primary symptoms</b></td><td>{{.PrimarySymptoms}}</td></tr>
    <tr><td><b>Additional symptoms</b></td><td>{{.AdditionalSymptoms}}</td></tr>
    <tr><td><b>Duration</b></td><td>{{.SymptomDuration}}</td></tr>
    <tr><td><b>Meeting link</b></td><td><a href="{{.MeetLink}}">{{.MeetLink}}</a></td></tr>
  </table>
  <h3 style="color: #3367d6;">Symptom summary</h3>
  <p>{{.SymptomSummary}}</p>
  <p>
    <a href="{{.AcceptURL}}" style="background: #2e7d32; color: #fff; padding: 10px 24px; text-decoration: none; border-radius: 4px;">Accept</a>
    &nbsp;
    <a href="{{.RejectURL}}" style="background: #c62828; color: #fff; padding: 10px 24px; text-decoration: none; border-radius: 4px;">Decline</a>
  </p>
  <p style="font-size: 12px; color: #888;">This link expires one hour after it was sent.</p>
</body>
</html>`

const patientConfirmedHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #2e7d32;">Appointment Confirmed</h2>
  <p>{{.DoctorName}} ({{.DoctorSpecialization}}) has accepted your appointment request.</p>
  <table cellpadding="6">
    <tr><td><b>Time</b></td><td>{{.ScheduledTime}}</td></tr>
    <tr><td><b>Video link</b></td><td><a href="{{.MeetLink}}">{{.MeetLink}}</a></td></tr>
  </table>
  <p>Please join the meeting link a few minutes before the scheduled time.</p>
</body>
</html>`

const patientRejectedHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #c62828;">Appointment Update</h2>
  <p>{{.DoctorName}} ({{.DoctorSpecialization}}) is unable to take your appointment at {{.ScheduledTime}}.</p>
  <p>Please book a different time slot or choose another specialist.</p>
</body>
</html>`
