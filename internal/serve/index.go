package serve

import "net/http"

// indexPage is a self-contained map viewer. It fetches the artifact
// from the server itself and draws each trip in its assigned color.
const indexPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>tripscope</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body, #map { height: 100%; margin: 0; }
  </style>
</head>
<body>
<div id="map"></div>
<script>
  const map = L.map('map');
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);

  fetch('/v1/trips.geojson')
    .then(resp => resp.json())
    .then(fc => {
      const layer = L.geoJSON(fc, {
        style: f => ({ color: f.properties.color || '#1f77b4', weight: 3 }),
        onEachFeature: (f, l) => {
          const p = f.properties;
          l.bindPopup(
            '<b>' + p.trip_id + '</b> (' + p.device_id + ')<br>' +
            p.total_distance_km.toFixed(2) + ' km, ' +
            p.duration_min.toFixed(1) + ' min, avg ' +
            p.avg_speed_kmh.toFixed(1) + ' km/h');
        }
      }).addTo(map);
      if (fc.features.length > 0) {
        map.fitBounds(layer.getBounds(), { padding: [20, 20] });
      } else {
        map.setView([0, 0], 2);
      }
    });
</script>
</body>
</html>
`

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}
