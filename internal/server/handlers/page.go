package handlers

// indexPage is the minimal operator page: the live authority diagram
// plus score and revision, refreshed over the WebSocket channel.
const indexPage = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Orbite</title>
<style>
  body { font-family: system-ui, sans-serif; background: #F8FAFC; color: #0F172A;
         margin: 0; display: flex; flex-direction: column; align-items: center; }
  header { width: 100%; padding: 12px 24px; box-sizing: border-box;
           display: flex; justify-content: space-between; align-items: center; }
  h1 { font-size: 18px; margin: 0; }
  #meta { font-size: 13px; color: #64748B; }
  #diagram { margin: 8px auto; }
</style>
</head>
<body>
<header>
  <h1>Orbite — dossier en cours</h1>
  <span id="meta">révision ?</span>
</header>
<div id="diagram"></div>
<script>
const meta = document.getElementById("meta");
const diagram = document.getElementById("diagram");

async function refresh() {
  const resp = await fetch("/v1/diagram.svg", { cache: "no-store" });
  diagram.innerHTML = await resp.text();
}

function connect() {
  const proto = location.protocol === "https:" ? "wss" : "ws";
  const sock = new WebSocket(proto + "://" + location.host + "/v1/ws");
  sock.onmessage = (event) => {
    const msg = JSON.parse(event.data);
    if (msg.type === "dossier.updated") {
      meta.textContent = "révision " + msg.data.revision;
      refresh();
    }
  };
  sock.onclose = () => setTimeout(connect, 2000);
}

refresh();
connect();
</script>
</body>
</html>
`
