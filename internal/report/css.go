package report

const baseCSS = `<style>
:root {
  --ink: #0b1220;
  --muted: #5b667a;
  --bg: #f6f8fc;
  --card: #ffffff;
  --panel: #fbfcff;
  --line: #e5e9f2;
  --blue: #0a3278;
  --accent: #1e78ff;
  --soft: #e9edf7;
  --shadow: 0 10px 30px rgba(8, 22, 54, 0.08);
  --radius: 18px;
  --mono: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", monospace;
  --sans: ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, Helvetica, Arial;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  font-family: var(--sans);
  color: var(--ink);
  background:
    radial-gradient(900px 600px at 15% 0%, rgba(30, 120, 255, 0.12), transparent 60%),
    radial-gradient(900px 600px at 85% 10%, rgba(10, 50, 120, 0.10), transparent 55%),
    var(--bg);
}
.container { max-width: 980px; margin: 44px auto; padding: 0 18px; }
.header { display: flex; align-items: center; justify-content: space-between; gap: 16px; margin-bottom: 18px; }
.brand { display: flex; align-items: center; gap: 12px; }
.brand h1 { margin: 0; font-size: 20px; }
.brand p { margin: 2px 0 0; color: var(--muted); font-size: 13px; }
.logo { width: 42px; height: 42px; border-radius: 14px; background: linear-gradient(135deg, var(--accent), var(--blue)); box-shadow: var(--shadow); }
.logo-img { width: 52px; height: auto; border-radius: 12px; }
.pill { font-size: 12px; color: var(--muted); border: 1px solid var(--line); background: rgba(255, 255, 255, 0.7); padding: 8px 12px; border-radius: 999px; }
.grid { display: grid; grid-template-columns: 1.2fr 0.8fr; gap: 18px; }
.card { background: var(--card); border: 1px solid var(--line); border-radius: var(--radius); box-shadow: var(--shadow); padding: 18px; }
.card h2 { margin: 0 0 10px; font-size: 16px; }
.subtle { color: var(--muted); font-size: 13px; line-height: 1.45; }
.actions { display: flex; gap: 10px; flex-wrap: wrap; margin-top: 12px; }
.upload { display: flex; flex-direction: column; gap: 10px; margin-top: 12px; }
input[type="file"] { padding: 12px; border: 1px dashed var(--line); border-radius: 14px; background: var(--panel); }
button, .btn-link {
  display: inline-flex;
  align-items: center;
  justify-content: center;
  border: 0;
  border-radius: 14px;
  padding: 12px 14px;
  font-weight: 600;
  cursor: pointer;
  color: white;
  background: linear-gradient(135deg, var(--accent), var(--blue));
  box-shadow: 0 10px 22px rgba(30, 120, 255, 0.22);
}
button:hover, .btn-link:hover { filter: brightness(1.02); text-decoration: none; }
button.secondary, .btn-link.secondary { background: var(--soft); color: var(--ink); box-shadow: none; border: 1px solid var(--line); }
.metrics { display: grid; grid-template-columns: repeat(4, 1fr); gap: 10px; margin: 12px 0 4px; }
.metric, .kv .item { border: 1px solid var(--line); border-radius: 14px; padding: 12px; background: var(--panel); }
.metric .k, .kv .label { font-size: 11px; color: var(--muted); margin-bottom: 6px; }
.metric .v { font-family: var(--mono); font-size: 18px; font-weight: 700; }
.metric .s { margin-top: 6px; font-size: 12px; color: var(--muted); line-height: 1.35; }
.kv { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin-top: 12px; }
.kv .value { font-family: var(--mono); font-size: 12px; word-break: break-word; }
.verdict { display: inline-flex; align-items: center; gap: 8px; border-radius: 999px; padding: 8px 12px; font-weight: 700; font-size: 12px; border: 1px solid var(--line); }
.badge-dot { width: 9px; height: 9px; border-radius: 99px; background: #999; }
.progress { margin-top: 14px; border: 1px solid var(--line); border-radius: 14px; padding: 10px; background: var(--panel); }
.progress .subtle { margin-bottom: 8px; }
.bar { height: 12px; border-radius: 999px; background: var(--soft); overflow: hidden; }
.bar > div { height: 100%; width: 0%; transition: width 600ms ease; }
.timeline { margin: 0; padding-left: 18px; }
.timeline li { margin: 8px 0; }
hr { border: 0; border-top: 1px solid var(--line); margin: 14px 0; }
.footer { margin-top: 18px; color: var(--muted); font-size: 12px; text-align: center; }
a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
.split { display: grid; grid-template-columns: 1fr 1fr; gap: 14px; margin-top: 14px; }
.panel { border: 1px solid var(--line); border-radius: 16px; padding: 12px; background: var(--panel); }
.panel h3 { margin: 0 0 8px; font-size: 13px; }
.table { width: 100%; border-collapse: collapse; font-size: 12px; }
.table th, .table td { text-align: left; padding: 8px 6px; border-bottom: 1px solid var(--line); vertical-align: top; }
.mono { font-family: var(--mono); }
.tag { display: inline-flex; padding: 2px 8px; border-radius: 999px; border: 1px solid var(--line); font-size: 11px; color: var(--muted); background: rgba(255, 255, 255, 0.75); }
.replay-controls { display: flex; align-items: center; gap: 10px; margin: 12px 0 14px; }
.replay { border: 1px solid var(--line); border-radius: 16px; padding: 14px; background: var(--panel); }
.replay-step { display: grid; grid-template-columns: 34px 1fr; gap: 10px; padding: 10px 6px; opacity: 0.35; transform: translateY(4px); transition: opacity 350ms ease, transform 350ms ease; }
.replay-step.active { opacity: 1; transform: translateY(0); }
.replay-left { position: relative; display: flex; justify-content: center; }
.replay-dot { width: 12px; height: 12px; border-radius: 999px; border: 2px solid var(--accent); background: white; margin-top: 2px; }
.replay-line { position: absolute; top: 18px; bottom: -8px; width: 2px; background: var(--line); }
.replay-title { font-weight: 700; font-size: 13px; margin-bottom: 4px; }
.replay-desc { color: var(--muted); font-size: 13px; line-height: 1.45; }
@media (prefers-reduced-motion: reduce) {
  .replay-step, .bar > div { transition: none; }
}
@media (max-width: 860px) {
  .grid, .split { grid-template-columns: 1fr; }
  .metrics { grid-template-columns: repeat(2, 1fr); }
}
</style>`
